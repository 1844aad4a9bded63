// Package main is the entry point for the when CLI.
// It parses flags, joins the remaining arguments into one expression and
// prints the conversion results. All conversion logic lives in internal/.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pkordes/when/internal/convert"
	"github.com/pkordes/when/internal/format"
)

var (
	shortOutput   bool
	jsonOutput    bool
	colors        string
	listTimezones bool
)

var rootCmd = &cobra.Command{
	Use:   "when [expression]",
	Short: "Convert human time expressions between locations and timezones",
	Long: `when converts a human-typed time expression between locations and
timezones. The expression combines an optional time, an optional date and
an optional location chain:

  when
  when 2pm in vienna
  when 14:30 tomorrow in berlin -> san francisco
  when +3h
  when 1577836800

Without arguments it shows the current local time.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&shortOutput, "short", "s", false, "print one line per result")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as a JSON array")
	rootCmd.Flags().StringVar(&colors, "colors", "auto", "color output: auto, never or always")
	rootCmd.Flags().BoolVar(&listTimezones, "list-timezones", false, "list all known IANA timezone identifiers and exit")
}

// bindEnv lets every flag be set through a WHEN_* environment variable
// (WHEN_COLORS=never, WHEN_SHORT=1). Explicit flags win over environment.
func bindEnv(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("WHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, v.GetString(f.Name))
		}
	})
}

func run(cmd *cobra.Command, args []string) error {
	bindEnv(cmd)

	mode, err := format.ParseColorMode(colors)
	if err != nil {
		return err
	}
	mode.Apply()

	p := &format.Printer{Out: cmd.OutOrStdout()}

	if listTimezones {
		p.ListTimezones()
		return nil
	}

	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		input = "now"
	}

	var c convert.Converter
	out, err := c.Convert(input)
	if err != nil {
		return err
	}

	switch {
	case jsonOutput:
		return p.JSON(out)
	case shortOutput:
		p.Short(out)
	default:
		p.Full(out)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
