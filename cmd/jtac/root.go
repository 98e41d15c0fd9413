package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	jtac "github.com/plblum/jTAC-sub003"
)

type rootOptions struct {
	culture     string
	cultureData string
	typeName    string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "jtac",
		Short:         "Parse, format and validate culture specific values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.culture, "culture", "c", "", "culture name, e.g. en-US (default: the data's default culture)")
	flags.StringVar(&opts.cultureData, "culture-data", "", "JSON or YAML file layered over the built-in culture data")
	flags.StringVarP(&opts.typeName, "type", "t", jtac.TypeFloat, "type manager name, e.g. Integer, Currency, Date")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")

	cmd.AddCommand(
		newParseCmd(opts),
		newFormatCmd(opts),
		newCheckCmd(opts),
		newCulturesCmd(opts),
		newTypesCmd(opts),
		newRoundCmd(),
	)
	return cmd
}

func (o *rootOptions) config(stderr io.Writer) (*jtac.Config, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	options := []jtac.Option{jtac.WithLogger(logger)}
	if o.cultureData != "" {
		options = append(options, jtac.WithCultureData(o.cultureData))
	}
	cfg, err := jtac.NewConfig(options...)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) typeManager(cmd *cobra.Command) (jtac.TypeManager, error) {
	cfg, err := o.config(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return cfg.TypeManager(o.typeName, o.culture)
}
