package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"roseh.moe/pkg/toon"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode JSON as TOON",
	Long:  "Reads JSON from a file (or stdin, if no file is given) and writes the equivalent TOON document to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}

		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("toon encode: invalid JSON input: %w", err)
		}

		logger.WithField("bytes", len(data)).Debug("decoded JSON input")

		opts := &toon.EncodeOptions{
			Delimiter:    parseDelimiter(delimiterFlag),
			Indent:       indentFlag,
			LengthMarker: lengthMarker,
		}
		out, err := toon.Encode(toon.FromAny(decoded), opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
