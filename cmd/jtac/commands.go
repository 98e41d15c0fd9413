package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	jtac "github.com/plblum/jTAC-sub003"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>...",
		Short: "Parse culture formatted text and print its neutral form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := opts.typeManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, text := range args {
				value, err := tm.ToValue(text)
				if err != nil {
					return err
				}
				neutral, err := tm.ToStringNeutral(value)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, neutral)
			}
			return nil
		},
	}
}

func newFormatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <neutral>...",
		Short: "Format neutral text for the selected culture",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := opts.typeManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, text := range args {
				value, err := tm.ToValueNeutral(text)
				if err != nil {
					return err
				}
				formatted, err := tm.ToString(value)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatted)
			}
			return nil
		},
	}
}

var errInvalidValues = errors.New("one or more values are invalid")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <text>...",
		Short: "Report whether each text is a valid value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := opts.typeManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := false
			for _, text := range args {
				if _, err := tm.ToValue(text); err != nil {
					var inputErr *jtac.InputError
					if !errors.As(err, &inputErr) {
						return err
					}
					failed = true
					if rejected := rejectedChars(tm, text); rejected != "" {
						fmt.Fprintf(out, "%q\tinvalid\t%s\trejected %q\n", text, inputErr.Reason, rejected)
						continue
					}
					fmt.Fprintf(out, "%q\tinvalid\t%s\n", text, inputErr.Reason)
					continue
				}
				fmt.Fprintf(out, "%q\tvalid\n", text)
			}
			if failed {
				return errInvalidValues
			}
			return nil
		},
	}
}

func newCulturesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cultures",
		Short: "List the cultures with formatting data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			registry, err := cfg.CultureRegistry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fallback := registry.DefaultCulture()
			for _, name := range registry.Names() {
				if strings.EqualFold(name, fallback) {
					fmt.Fprintf(out, "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered type managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			registry := cfg.Registry()
			for _, name := range registry.Names() {
				if aliases := registry.AliasesOf(name); len(aliases) > 0 {
					fmt.Fprintf(out, "%s (%s)\n", name, strings.Join(aliases, ", "))
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newRoundCmd() *cobra.Command {
	var (
		mode   string
		places int
	)
	cmd := &cobra.Command{
		Use:   "round <number>...",
		Short: "Round numbers with a rounding mode",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roundMode, err := jtac.ParseRoundMode(mode)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, arg := range args {
				value, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("parse %q: %w", arg, err)
				}
				rounded, err := jtac.Round(value, roundMode, places)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, strconv.FormatFloat(rounded, 'f', -1, 64))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "Point5", "rounding mode: Point5, Currency, Truncate, Ceiling, NextWhole or ReportError")
	cmd.Flags().IntVarP(&places, "places", "p", 0, "maximum decimal places")
	return cmd
}

// rejectedChars returns the characters of text that tm would block while
// typing, without duplicates.
func rejectedChars(tm jtac.TypeManager, text string) string {
	var b strings.Builder
	for _, ch := range text {
		if !tm.IsValidChar(ch) && !strings.ContainsRune(b.String(), ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
