package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roseh.moe/pkg/toon"
)

var (
	rootCmd = &cobra.Command{
		Use:          "toon",
		Short:        "toon",
		SilenceUsage: true,
		Long:         `Converts between TOON (Token-Oriented Object Notation) and JSON.`,
	}

	delimiterFlag string
	indentFlag    int
	lengthMarker  bool
	strictFlag    bool
	logger        = logrus.StandardLogger()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&delimiterFlag, "delimiter", ",", "field delimiter for inline/tabular arrays: ',', '\\t', or '|'")
	rootCmd.PersistentFlags().IntVar(&indentFlag, "indent", 2, "number of spaces per indentation level")
	rootCmd.PersistentFlags().BoolVar(&lengthMarker, "length-marker", false, "prefix array lengths with '#' when encoding")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", true, "reject malformed TOON instead of recovering from it when decoding")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	return rootCmd.Execute()
}

func parseDelimiter(s string) toon.Delimiter {
	switch s {
	case "\\t", "\t":
		return toon.DelimiterTab
	case "|":
		return toon.DelimiterPipe
	default:
		return toon.DelimiterComma
	}
}
