package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/bakery"
	"github.com/syssam/bakery/config"
	"github.com/syssam/bakery/schema"
	"github.com/syssam/bakery/store/memstore"
	"github.com/syssam/bakery/store/sqlstore"

	// SQL drivers selectable via --dialect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	bakeSchema  string
	bakeModel   string
	bakeCount   int
	bakeFillAll bool
	bakeFill    []string
	bakeSets    []string
	bakeOutput  string
	bakeDialect string
	bakeDSN     string
	bakeConfig  string
)

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Build and persist instances of a model",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := schema.Load(bakeSchema)
		if err != nil {
			return fail(err)
		}
		m := lookupModel(set, bakeModel)
		if m == nil {
			return fail(fmt.Errorf("model %q not found in %s", bakeModel, bakeSchema))
		}

		var fopts []bakery.FactoryOption
		if bakeDSN != "" {
			st, err := sqlstore.Open(bakeDialect, bakeDSN)
			if err != nil {
				return fail(err)
			}
			defer st.Close()
			fopts = append(fopts, bakery.WithDefaultStore(st))
		} else {
			fopts = append(fopts, bakery.WithDefaultStore(memstore.New()))
		}
		f := bakery.New(fopts...)
		if bakeConfig != "" {
			cfg, err := config.Load(bakeConfig)
			if err != nil {
				return fail(err)
			}
			if err := f.Configure(cfg); err != nil {
				return fail(err)
			}
		}

		opts, err := buildOptions()
		if err != nil {
			return fail(err)
		}
		instances, err := f.MakeMany(cmd.Context(), m, bakeCount, opts...)
		if err != nil {
			return fail(err)
		}

		exports := make([]map[string]any, len(instances))
		for i, inst := range instances {
			exports[i] = inst.Export()
		}
		if err := encode(os.Stdout, exports, bakeOutput); err != nil {
			return fail(err)
		}
		status("baked %d %s instance(s)", len(instances), m.Name)
		return nil
	},
}

func init() {
	bakeCmd.Flags().StringVar(&bakeSchema, "schema", "schema.json", "schema file to load")
	bakeCmd.Flags().StringVar(&bakeModel, "model", "", "model name to build (required)")
	bakeCmd.Flags().IntVar(&bakeCount, "count", 1, "number of instances to build")
	bakeCmd.Flags().BoolVar(&bakeFillAll, "fill-all", false, "generate every optional field")
	bakeCmd.Flags().StringSliceVar(&bakeFill, "fill", nil, "optional fields to generate")
	bakeCmd.Flags().StringArrayVar(&bakeSets, "set", nil, "field override as name=value (repeatable)")
	bakeCmd.Flags().StringVar(&bakeOutput, "output", "json", "output encoding (json, yaml or msgpack)")
	bakeCmd.Flags().StringVar(&bakeDialect, "dialect", sqlstore.SQLite, "sql dialect when --dsn is set")
	bakeCmd.Flags().StringVar(&bakeDSN, "dsn", "", "persist to this database instead of memory")
	bakeCmd.Flags().StringVar(&bakeConfig, "config", "", "factory configuration file")
	_ = bakeCmd.MarkFlagRequired("model")
}

// lookupModel finds a model by name, falling back to a case-insensitive
// match so `--model user` hits the User model.
func lookupModel(set *schema.Set, name string) *schema.Model {
	if m := set.Model(name); m != nil {
		return m
	}
	for _, m := range set.Models {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

func buildOptions() ([]bakery.Option, error) {
	var opts []bakery.Option
	if bakeFillAll {
		opts = append(opts, bakery.FillAll())
	}
	if len(bakeFill) > 0 {
		opts = append(opts, bakery.Fill(bakeFill...))
	}
	for _, kv := range bakeSets {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want name=value", kv)
		}
		opts = append(opts, bakery.WithValue(name, parseValue(raw)))
	}
	return opts, nil
}

// parseValue interprets an override literal: bools and numbers keep
// their type, everything else stays a string.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func encode(w io.Writer, exports []map[string]any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exports)
	case "yaml":
		return yaml.NewEncoder(w).Encode(exports)
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(exports)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
