package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Styles used to render the different kinds of compilation messages.
var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnColorFG  = pterm.FgYellow
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

const icePostlude = `This error is a bug in the compiler, not in your program.
Please open an issue on GitHub: github.com/oolong-lang/oolong`

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n\n")
	errorStyleBG.Print("Internal Compiler Error")
	errorColorFG.Println(" " + message)
	infoColorFG.Println(icePostlude)
	fmt.Println()
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n\n")
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + message)
	fmt.Println()
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	if label == "error" {
		errorStyleBG.Print(label)
	} else {
		warnStyleBG.Print(label)
	}

	if span == nil {
		fmt.Printf(" %s: %s\n\n", reprPath, message)
	} else {
		fmt.Printf(" %s:%d:%d: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, message)
		displaySourceText(absPath, span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	errorStyleBG.Print("error")
	fmt.Printf(" %s: %s\n\n", reprPath, err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		// The file has already been read once during compilation, so failure
		// here means the environment changed out from under the compiler.
		displayFatal(fmt.Sprintf("failed to open file %s for reporting: %s", absPath, err))
		os.Exit(1)
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if err := sc.Err(); err != nil {
		displayFatal(fmt.Sprintf("failed to read file %s for reporting: %s", absPath, err))
		os.Exit(1)
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Calculate the maximum line number length.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))

	// Generate the format string for line numbers.
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		// Print the line number and separator bar.
		infoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))

		// Print the source text with the leading indent trimmed off.
		fmt.Println(line[minIndent:])

		// Print the line number bar used for caret underlining.
		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Calculate the number of spaces before caret underlining begins. For
		// any line which is not the starting line, this is always zero since
		// the underlining is always continuing from the previous line.
		var caretPrefixCount int
		if i == 0 {
			caretPrefixCount = span.StartCol - minIndent
		}

		// Calculate the number of characters at the end of the source line
		// that should not be underlined.  This is only ever nonzero for the
		// last line: underlining on every earlier line continues to the end of
		// the line and over onto the next one.
		var caretSuffixCount int
		if i == len(lines)-1 {
			caretSuffixCount = len(line) - span.EndCol
		}

		// Skip underlining until the start column.
		fmt.Print(strings.Repeat(" ", caretPrefixCount))

		// Print the underlining carets for the given line.
		errorColorFG.Println(strings.Repeat("^", len(line)-caretSuffixCount-caretPrefixCount-minIndent))
	}

	// Print a closing newline after the message.
	fmt.Println()
}
