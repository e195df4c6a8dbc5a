package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironiridis/memfile"
)

func newRootCmd() (*cobra.Command, error) {
	var (
		name string
		data string
	)
	rootCmd := &cobra.Command{
		Use:   "filebasics",
		Short: "filebasics",
		Long:  `filebasics opens, reads and closes an in-memory file whose transitions fail at random`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, err := ratesFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return runDemo(cmd.OutOrStdout(), name, []byte(data), rates)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Bool("debug", false, "enable debug logging")
	pf.String("faults", "", "path to a YAML file with openFailureRate and closeFailureRate")
	pf.Float64("open-failure-rate", memfile.DefaultRates.Open, "probability that opening the file fails (overrides --faults)")
	pf.Float64("close-failure-rate", memfile.DefaultRates.Close, "probability that closing the file fails (overrides --faults)")
	if err := pf.MarkHidden("debug"); err != nil {
		return nil, err
	}

	f := rootCmd.Flags()
	f.StringVar(&name, "name", "4.txt", "name of the in-memory file")
	f.StringVar(&data, "data", "rust!", "content of the in-memory file")

	rootCmd.AddCommand(newTrialsCmd())
	return rootCmd, nil
}

// ratesFromFlags starts from the defaults, applies --faults and then any
// rate flag set explicitly.
func ratesFromFlags(flags *pflag.FlagSet) (memfile.Rates, error) {
	rates := memfile.DefaultRates
	path, err := flags.GetString("faults")
	if err != nil {
		return rates, err
	}
	if path != "" {
		if rates, err = memfile.LoadRates(path); err != nil {
			return rates, err
		}
	}
	if flags.Changed("open-failure-rate") {
		if rates.Open, err = flags.GetFloat64("open-failure-rate"); err != nil {
			return rates, err
		}
	}
	if flags.Changed("close-failure-rate") {
		if rates.Close, err = flags.GetFloat64("close-failure-rate"); err != nil {
			return rates, err
		}
	}
	if err := rates.Validate(); err != nil {
		return rates, err
	}
	logrus.WithFields(logrus.Fields{"open": rates.Open, "close": rates.Close}).Debug("fault rates")
	return rates, nil
}

func runDemo(out io.Writer, name string, data []byte, rates memfile.Rates) error {
	f, err := memfile.NewWithData(name, data, memfile.WithPolicy(rates))
	if err != nil {
		return err
	}

	var buffer []byte
	if f, err = memfile.Open(f); err != nil {
		return err
	}
	n, err := f.ReadInto(&buffer)
	if err != nil {
		return err
	}
	if f, err = memfile.Close(f); err != nil {
		return err
	}

	fmt.Fprintf(out, "%#v\n", f)
	fmt.Fprintf(out, "%s is %d bytes long\n", f.Name(), n)
	fmt.Fprintln(out, strings.ToValidUTF8(string(buffer), "\uFFFD"))
	return nil
}
