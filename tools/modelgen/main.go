package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// tables are the scheduler's own tables; clawcolony_migrations is left out.
// jsonb columns map to []byte so repos can hand them to encoding/json.
var tables = map[string][]gen.ModelOpt{
	"worker_memories": {gen.FieldType("memory", "[]byte")},
	"colony_states":   {gen.FieldType("state", "[]byte")},
	"production_logs": nil,
	"sim_clocks":      nil,
}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("CLAWCOLONY_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or CLAWCOLONY_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	for table, opts := range tables {
		g.GenerateModel(table, opts...)
	}
	g.Execute()

	fmt.Printf("generated gorm models at %s\n", out)
}
