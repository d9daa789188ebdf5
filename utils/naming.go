package utils

import "fmt"

// OrdinalWidth keeps names sortable up to ordinal 99999.
const OrdinalWidth = 5

// ChapterFileName derives a chapter file name from its ordinal, e.g. 7, ".txt" -> "00007.txt".
func ChapterFileName(ordinal int, ext string) string {
	return fmt.Sprintf("%0*d%s", OrdinalWidth, ordinal, ext)
}
