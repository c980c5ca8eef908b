package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"roseh.moe/pkg/toon"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode TOON as JSON",
	Long:  "Reads a TOON document from a file (or stdin, if no file is given) and writes the equivalent JSON to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}

		strict := strictFlag
		opts := &toon.DecodeOptions{Strict: &strict, Indent: indentFlag}
		v, err := toon.Decode(string(data), opts)
		if err != nil {
			logger.WithError(err).Error("failed to decode TOON input")
			return err
		}

		out, err := json.MarshalIndent(toAny(v), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

// toAny converts a toon.Value into a plain Go value suitable for
// encoding/json: JSON objects have no defined member order, so an
// Object's field order is not preserved here even though the library
// itself preserves it end to end.
func toAny(v toon.Value) any {
	switch v.Kind() {
	case toon.KindNull:
		return nil
	case toon.KindBool:
		b, _ := v.AsBool()
		return b
	case toon.KindInt:
		i, _ := v.AsInt()
		return i
	case toon.KindFloat:
		f, _ := v.AsFloat()
		return f
	case toon.KindString:
		s, _ := v.AsString()
		return s
	case toon.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, el := range elems {
			out[i] = toAny(el)
		}
		return out
	case toon.KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]any, obj.Len())
		for _, f := range obj.Fields() {
			out[f.Key] = toAny(f.Value)
		}
		return out
	default:
		return nil
	}
}
