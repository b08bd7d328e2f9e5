package bakery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/bakery"
	"github.com/syssam/bakery/schema"
	"github.com/syssam/bakery/store/memstore"
)

// blogModels returns User, Tag, Post and a Membership through model
// wired together.
func blogModels() (user, tag, post *schema.Model) {
	user = &schema.Model{
		Name: "User",
		Fields: []*schema.Field{
			{Name: "name", Type: schema.TypeString},
		},
	}
	tag = &schema.Model{
		Name: "Tag",
		Fields: []*schema.Field{
			{Name: "label", Type: schema.TypeString},
		},
	}
	post = &schema.Model{
		Name: "Post",
		Fields: []*schema.Field{
			{Name: "title", Type: schema.TypeString},
		},
		Relations: []*schema.Relation{
			{Name: "author", Kind: schema.ToOne, Target: user, Required: true},
			{Name: "editor", Kind: schema.ToOne, Target: user},
			{Name: "tags", Kind: schema.ToMany, Target: tag},
		},
	}
	return user, tag, post
}

func TestRequiredToOneBuiltAndSavedFirst(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	inst, err := f.Make(context.Background(), post)
	require.NoError(t, err)

	author := inst.Related("author")
	require.NotNil(t, author)
	assert.True(t, author.Saved())

	fk, ok := inst.Get("author_id")
	require.True(t, ok)
	assert.Equal(t, author.ID(), fk)

	// One save per instance: the author and the post.
	assert.Equal(t, 2, ms.Saves())
	require.Len(t, ms.Rows("posts"), 1)
	assert.Equal(t, author.ID(), ms.Rows("posts")[0].Values["author_id"])
}

func TestOptionalToOneSkippedUnlessSelected(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	f := bakery.New()

	inst, err := f.Prepare(context.Background(), post)
	require.NoError(t, err)
	assert.Nil(t, inst.Related("editor"))

	inst, err = f.Prepare(context.Background(), post, bakery.Fill("editor"))
	require.NoError(t, err)
	assert.NotNil(t, inst.Related("editor"))
}

func TestToOneOverrideWithInstance(t *testing.T) {
	t.Parallel()

	user, _, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	author, err := f.Make(context.Background(), user)
	require.NoError(t, err)

	// Two posts share one author; the author is saved exactly once.
	for range 2 {
		inst, err := f.Make(context.Background(), post, bakery.WithValue("author", author))
		require.NoError(t, err)
		assert.Same(t, author, inst.Related("author"))
		fk, _ := inst.Get("author_id")
		assert.Equal(t, author.ID(), fk)
	}
	assert.Len(t, ms.Rows("users"), 1)
	assert.Len(t, ms.Rows("posts"), 2)
}

func TestToOneOverrideWithIdentifier(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	inst, err := f.Make(context.Background(), post, bakery.WithValue("author", int64(42)))
	require.NoError(t, err)

	assert.Nil(t, inst.Related("author"))
	fk, _ := inst.Get("author_id")
	assert.Equal(t, int64(42), fk)

	// No user row was created.
	assert.Empty(t, ms.Rows("users"))
	assert.Equal(t, 1, ms.Saves())
}

func TestToOneOverrideOnFKColumn(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	f := bakery.New()

	inst, err := f.Prepare(context.Background(), post, bakery.WithValue("author_id", int64(7)))
	require.NoError(t, err)
	fk, _ := inst.Get("author_id")
	assert.Equal(t, int64(7), fk)
}

func TestToManyDeferredUntilOwnerSaved(t *testing.T) {
	t.Parallel()

	_, tag, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	tags, err := f.PrepareMany(context.Background(), tag, 2)
	require.NoError(t, err)

	// Prepare stages attachments without applying them.
	prep, err := f.Prepare(context.Background(), post, bakery.WithValue("tags", tags))
	require.NoError(t, err)
	assert.Len(t, prep.Pending(), 2)
	assert.Empty(t, ms.Rows("posts_tags"))

	// Make applies them once identity exists on both sides.
	inst, err := f.Make(context.Background(), post, bakery.WithValue("tags", tags))
	require.NoError(t, err)
	assert.Empty(t, inst.Pending())

	rows := ms.Rows("posts_tags")
	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.Equal(t, inst.ID(), row.Values["post_id"])
		assert.Equal(t, tags[i].ID(), row.Values["tag_id"])
		assert.True(t, tags[i].Saved())
	}
}

func TestToManySelectedByFill(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	inst, err := f.Make(context.Background(), post, bakery.Fill("tags"))
	require.NoError(t, err)
	assert.Empty(t, inst.Pending())
	assert.Len(t, ms.Rows("tags"), 1)
	assert.Len(t, ms.Rows("posts_tags"), 1)
}

func TestToManyOverrideTypeChecked(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	f := bakery.New()

	_, err := f.Prepare(context.Background(), post, bakery.WithValue("tags", "not-a-list"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to-many override must be []*Instance")
}

func TestThroughModelBuiltExplicitly(t *testing.T) {
	t.Parallel()

	user := &schema.Model{
		Name:   "User",
		Fields: []*schema.Field{{Name: "name", Type: schema.TypeString}},
	}
	team := &schema.Model{
		Name:   "Team",
		Fields: []*schema.Field{{Name: "name", Type: schema.TypeString}},
	}
	membership := &schema.Model{
		Name: "Membership",
		Fields: []*schema.Field{
			{Name: "joined", Type: schema.TypeDate},
			{Name: "role", Type: schema.TypeEnum, Enums: []string{"owner", "member"}, Default: "member"},
		},
	}
	team.Relations = []*schema.Relation{
		{Name: "members", Kind: schema.ToMany, Target: user, Through: membership},
	}

	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	member, err := f.Prepare(context.Background(), user)
	require.NoError(t, err)

	inst, err := f.Make(context.Background(), team, bakery.WithValue("members", []*bakery.Instance{member}))
	require.NoError(t, err)

	rows := ms.Rows("memberships")
	require.Len(t, rows, 1)
	assert.Equal(t, inst.ID(), rows[0].Values["team_id"])
	assert.Equal(t, member.ID(), rows[0].Values["user_id"])
	// The through instance carries its own fields.
	assert.Equal(t, "member", rows[0].Values["role"])
	assert.Contains(t, rows[0].Values, "joined")

	// No plain join table was touched.
	assert.Empty(t, ms.Rows("teams_members"))
}

func TestNestedBuildErrorNamesTheRelation(t *testing.T) {
	t.Parallel()

	author := &schema.Model{
		Name: "Author",
		// Enum with no values cannot be generated.
		Fields: []*schema.Field{{Name: "status", Type: schema.TypeEnum}},
	}
	post := &schema.Model{
		Name:   "Post",
		Fields: []*schema.Field{{Name: "title", Type: schema.TypeString}},
		Relations: []*schema.Relation{
			{Name: "author", Kind: schema.ToOne, Target: author, Required: true},
		},
	}

	f := bakery.New()
	_, err := f.Prepare(context.Background(), post)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Post.author")
	assert.Contains(t, err.Error(), "no values")
}
