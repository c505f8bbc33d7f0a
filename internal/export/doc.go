// Package export serializes collections of exported books into the
// portable output formats.
//
// # Formats
//
// Three formats are supported, each a pure function of its input:
//
//   - markdown: every book's document under a "# title" heading,
//     separated by standalone --- lines
//   - json: pretty-printed array of export records, notes included
//   - csv: one row per note under a fixed 14-column header, with
//     always-quoted fields and literal \n for embedded line breaks
//
// # Usage
//
//	file, err := export.BuildCombinedExport(books, export.FormatJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(file.Name)     // weread-export.json
//	fmt.Println(file.MIMEType) // application/json
package export
