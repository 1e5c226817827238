package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jacoelho/langtable"
	"github.com/jacoelho/langtable/internal/integrity"
	"github.com/jacoelho/langtable/internal/model"
	"github.com/jacoelho/langtable/internal/pgexport"
)

func (env *environment) load(ctx context.Context) (*langtable.Model, error) {
	return langtable.Load(ctx, env.opts)
}

func (env *environment) fail(format string, args ...any) int {
	_ = writef(env.stderr, "error: "+format+"\n", args...)
	return 1
}

func (env *environment) usage(format string, args ...any) int {
	_ = writef(env.stderr, "error: "+format+"\n", args...)
	return 2
}

func runStats(ctx context.Context, env *environment, args []string) int {
	if len(args) != 0 {
		return env.usage("stats takes no arguments")
	}
	m, loadErr := env.load(ctx)
	if m == nil {
		return env.fail("%v", loadErr)
	}
	for _, doc := range model.Documents {
		var n int
		var source string
		switch doc {
		case model.DocumentKeyboards:
			n, source = m.Keyboards.Len(), m.Keyboards.Source()
		case model.DocumentTerritories:
			n, source = m.Territories.Len(), m.Territories.Source()
		case model.DocumentLanguages:
			n, source = m.Languages.Len(), m.Languages.Source()
		}
		if err := writef(env.stdout, "%-12s %-10s %6d %s\n", doc, m.State(doc), n, source); err != nil {
			return 1
		}
	}
	if loadErr != nil {
		return env.fail("%v", loadErr)
	}
	return 0
}

func runShow(ctx context.Context, env *environment, args []string) int {
	if len(args) != 2 {
		return env.usage("show requires a kind and an id")
	}
	kind, id := args[0], args[1]
	m, err := env.load(ctx)
	if err != nil {
		return env.fail("%v", err)
	}

	var lines []string
	switch kind {
	case "keyboard":
		k, ok := m.Keyboard(id)
		if !ok {
			return env.fail("keyboard %q not found", id)
		}
		lines = []string{
			"keyboard " + k.ID,
			"  description: " + k.Description,
			"  comment: " + k.Comment,
			fmt.Sprintf("  ascii: %t", k.ASCIICapable),
			"  languages: " + formatRanks(k.Languages),
			"  territories: " + formatRanks(k.Territories),
		}
	case "territory":
		t, ok := m.Territory(id)
		if !ok {
			return env.fail("territory %q not found", id)
		}
		lines = []string{
			"territory " + t.ID,
			"  names: " + formatNames(t.Names),
			"  languages: " + formatRanks(t.Languages),
			"  locales: " + formatRanks(t.Locales),
			"  keyboards: " + formatRanks(t.Keyboards),
			"  consolefonts: " + formatRanks(t.Consolefonts),
			"  timezones: " + formatRanks(t.Timezones),
		}
	case "language":
		l, ok := m.Language(id)
		if !ok {
			return env.fail("language %q not found", id)
		}
		lines = []string{
			"language " + l.ID,
			"  iso639-1: " + l.ISO6391,
			"  iso639-2-t: " + l.ISO6392Terminology,
			"  iso639-2-b: " + l.ISO6392Bibliographic,
			"  names: " + formatNames(l.Names),
			"  locales: " + formatRanks(l.Locales),
			"  territories: " + formatRanks(l.Territories),
			"  keyboards: " + formatRanks(l.Keyboards),
			"  consolefonts: " + formatRanks(l.Consolefonts),
			"  timezones: " + formatRanks(l.Timezones),
		}
	default:
		return env.usage("unknown kind %q (want keyboard, territory or language)", kind)
	}
	for _, line := range lines {
		if err := writeln(env.stdout, line); err != nil {
			return 1
		}
	}
	return 0
}

func runDump(ctx context.Context, env *environment, args []string) int {
	if len(args) != 1 {
		return env.usage("dump requires a document name")
	}
	doc, ok := model.ParseDocument(args[0])
	if !ok {
		return env.usage("unknown document %q (want keyboards, territories or languages)", args[0])
	}
	m, err := env.load(ctx)
	if err != nil {
		return env.fail("%v", err)
	}
	if err := m.WriteDocument(env.stdout, doc); err != nil {
		return env.fail("write %s: %v", doc, err)
	}
	return 0
}

func runCheck(ctx context.Context, env *environment, args []string) int {
	if len(args) != 0 {
		return env.usage("check takes no arguments")
	}
	m, err := env.load(ctx)
	if err != nil {
		return env.fail("%v", err)
	}
	issues := integrity.Check(m.Tables)
	for _, issue := range issues {
		if err := writeln(env.stdout, issue.String()); err != nil {
			return 1
		}
	}
	if len(issues) > 0 {
		return env.fail("%d integrity issues", len(issues))
	}
	if err := writeln(env.stdout, "ok"); err != nil {
		return 1
	}
	return 0
}

func runExport(ctx context.Context, env *environment, args []string) int {
	if len(args) != 0 {
		return env.usage("export takes no arguments")
	}
	if env.cfg.Database.DSN == "" {
		return env.usage("export requires -dsn or DATABASE_DSN")
	}
	m, err := env.load(ctx)
	if err != nil {
		return env.fail("%v", err)
	}

	pool, err := newPool(ctx, env.cfg.Database)
	if err != nil {
		return env.fail("%v", err)
	}
	defer pool.Close()

	exporter := pgexport.New(pool, env.logger).WithBatchSize(env.cfg.Database.BatchSize)
	res, err := exporter.Export(ctx, m.Tables)
	if err != nil {
		return env.fail("export: %v", err)
	}
	for _, table := range lo.Keys(res.Rows) {
		env.logger.Debug("exported table", "table", table, "rows", res.Rows[table])
	}
	total := lo.Sum(lo.Values(res.Rows))
	if err := writef(env.stdout, "exported %d rows into %d tables\n", total, len(res.Rows)); err != nil {
		return 1
	}
	return 0
}

func formatRanks(m langtable.RankMap) string {
	return strings.Join(lo.Map(m.Ranked(), func(e langtable.RankEntry, _ int) string {
		return fmt.Sprintf("%s=%d", e.ID, e.Rank)
	}), " ")
}

func formatNames(m langtable.NameMap) string {
	return strings.Join(lo.Map(m.Keys(), func(tag string, _ int) string {
		return fmt.Sprintf("%s=%q", tag, m[tag])
	}), " ")
}
