package rendering

import "strings"

// latexText maps the characters that are markup in LaTeX body text. Line
// breaks fold to spaces: a blank line inside \textbf or \item ends the
// argument early.
var latexText = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// latexURL maps what hyperref cannot take literally inside \href.
var latexURL = strings.NewReplacer(`\`, `\\`, `#`, `\#`, `%`, `\%`, `{`, `\{`, `}`, `\}`)

// EscapeLaTeX makes a resume leaf safe to place in LaTeX body text.
func EscapeLaTeX(text string) string {
	return latexText.Replace(text)
}

func escapeLaTeXURL(url string) string {
	return latexURL.Replace(url)
}
