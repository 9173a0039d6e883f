package ui

import (
	"fmt"
	"strings"
)

// ShowSplash prints the startup banner
func ShowSplash() {
	layout := DefaultLayout()
	title := "LEADLINE — find businesses, generate cold calling scripts"
	tagline := "search → review → script → call"

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(tagline))

	fmt.Println(BorderStyle.Width(layout.InnerWidth).Render(b.String()))
	fmt.Println()
}
