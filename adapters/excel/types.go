package excel

// SheetData is the raw string grid of one worksheet; row 0 is the header.
type SheetData struct {
	SheetName string
	Rows      [][]string
}
