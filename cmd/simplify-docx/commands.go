package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Options: map[string]any{}}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "set",
			Aliases:     []string{"s"},
			Description: "set a conversion option, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(key=val)"),
		},
		&cli.Opt{
			Name:        "options",
			Aliases:     []string{"f"},
			Description: "read conversion options from a yaml or json file",
			Type:        cli.NamedFuncOpt(cfg.optionsFileOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "simplify-docx").
		WithSynopsis("simplify-docx [opts] command [opts]").
		WithDescription("simplify-docx converts Word documents into a simplified JSON tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return simplifyMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			TextCommand(cfg),
			FindCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			OptionsCommand(cfg),
			MetaCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg, Indent: "  "}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "json").
		WithAliases("j", "convert").
		WithSynopsis("json [-indent s] <file.docx>").
		WithDescription("print the simplified tree of a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func TextCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TextConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Text, "text").
		WithAliases("t").
		WithSynopsis("text <file.docx>...").
		WithDescription("print the plain text of documents, one line per paragraph").
		WithRun(func(cc *cli.Context, args []string) error {
			return text(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find [-t type] [-e expr] [-c] <file.docx>").
		WithDescription("print the nodes of the simplified tree matching an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-merge] [-text] <a.docx> <b.docx>").
		WithDescription("compare the simplified trees of two documents, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch <file.docx> <patch.json>").
		WithDescription("apply a JSON Patch (RFC 6902) to the simplified tree of a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func OptionsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OptionsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "options").
		WithAliases("opts").
		WithSynopsis("options [-g group]").
		WithDescription("list conversion options with their effective values").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return listOptions(cfg, cc, args)
		})
}

func MetaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Meta, "meta").
		WithAliases("m").
		WithSynopsis("meta <file.docx>").
		WithDescription("print document properties").
		WithRun(func(cc *cli.Context, args []string) error {
			return meta(cfg, cc, args)
		})
}
