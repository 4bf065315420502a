package cmd

import (
	"fmt"

	"library-doctor/feature/collection"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// convertCmd decodes a document and writes it back in canonical form.
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Decode a DJ_PLAYLISTS document and re-encode it",
	Long: `Reads a rekordbox XML export, validates it and writes it back with fixed
indentation and attribute order. Entries and Count values are kept verbatim.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(afero.NewOsFs(), args[0], args[1])
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)
}

func runConvert(fs afero.Fs, in, out string) error {
	doc, err := collection.LoadDocument(fs, in)
	if err != nil {
		return err
	}
	if err := collection.SaveDocument(fs, out, doc); err != nil {
		return err
	}
	fmt.Printf("Converted %s -> %s (%d tracks)\n", in, out, len(doc.Collection.Tracks))
	return nil
}
