// Package schema describes the models the factory builds instances for.
//
// A Model is an ordered list of field descriptors plus its relations:
//
//	user := &schema.Model{
//	    Name: "User",
//	    Fields: []*schema.Field{
//	        {Name: "name", Type: schema.TypeString},
//	        {Name: "email", Type: schema.TypeEmail},
//	        {Name: "bio", Type: schema.TypeText, Optional: true, Nillable: true},
//	        {Name: "role", Type: schema.TypeEnum, Enums: []string{"admin", "member"}, Default: "member"},
//	    },
//	}
//
// # Nullability
//
// The Nillable/Optional split follows the usual entity-framework
// convention: Optional fields are not required on create, Nillable
// fields are nullable in storage. A field that is neither, and that has
// no default, must carry a value before persistence.
//
// # Relations
//
// Relations reference other models, by pointer when built in code or by
// name when loaded from the JSON form:
//
//	post := &schema.Model{
//	    Name:   "Post",
//	    Fields: []*schema.Field{{Name: "title", Type: schema.TypeString}},
//	    Relations: []*schema.Relation{
//	        {Name: "author", Kind: schema.ToOne, Target: user, Required: true},
//	        {Name: "tags", Kind: schema.ToMany, Target: tag},
//	    },
//	}
//
// To-many relations may name a Through model when the association
// carries extra attributes.
//
// # JSON form
//
// Model sets round-trip a JSON form so schemas can be shared with the
// command line tools:
//
//	set, err := schema.Load("schema.json")
//	user := set.Model("User")
package schema
