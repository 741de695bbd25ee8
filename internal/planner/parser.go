// Package planner reads day-planner notes into time blocks.
//
// A planner note is free-form markdown. Only checkbox list items that start
// with a time span are structured entries:
//
//	- [ ] 9:00 - 10:30 [[Write report]]
//	- [x] 13:00-13:45 Code review
//
// Everything else is prose and is ignored.
package planner

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

const (
	linkOpen  = "[["
	linkClose = "]]"
)

var (
	// list marker, one-character checkbox, start, dash, end, task name
	entryPattern = regexp.MustCompile(`^\s*[-*+] \[(.)\]\s+(\d+:\d\d)\s*-\s*(\d+:\d\d)\s*(.*)$`)

	// any checkbox list item; used to spot entries that fail entryPattern
	checkboxPattern = regexp.MustCompile(`^\s*[-*+] \[.\]`)
)

// SkippedLine is a checkbox item that looked like a planner entry but could
// not be read as one.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// Warning flags an accepted entry that is suspicious.
type Warning struct {
	Line    int
	Message string
}

// DayPlan is the parse result of one day's note.
type DayPlan struct {
	Date     domain.Date
	Blocks   []domain.TimeBlock
	Skipped  []SkippedLine
	Warnings []Warning
}

// Parse reads every line of text independently. It never fails: lines that do
// not match the entry grammar produce no block.
func Parse(date domain.Date, text string) DayPlan {
	plan := DayPlan{Date: date}
	lineNo := 0
	for line := range strings.Lines(text) {
		lineNo++
		plan.parseLine(lineNo, strings.TrimRight(line, "\r\n"))
	}
	return plan
}

// ParseReader is Parse over a reader. Only read errors are returned.
func ParseReader(date domain.Date, r io.Reader) (DayPlan, error) {
	plan := DayPlan{Date: date}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		plan.parseLine(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return DayPlan{}, err
	}
	return plan, nil
}

func (p *DayPlan) parseLine(lineNo int, line string) {
	matches := entryPattern.FindStringSubmatch(line)
	if matches == nil {
		if checkboxPattern.MatchString(line) && looksTimed(line) {
			p.skip(lineNo, line, "malformed time span")
		}
		return
	}

	start, err := domain.ParseClock(matches[2])
	if err != nil {
		p.skip(lineNo, line, "invalid start time "+matches[2])
		return
	}
	end, err := domain.ParseClock(matches[3])
	if err != nil {
		p.skip(lineNo, line, "invalid end time "+matches[3])
		return
	}

	name, linked := splitLink(strings.TrimSpace(matches[4]))
	if strings.TrimSpace(name) == "" {
		p.skip(lineNo, line, "missing task name")
		return
	}
	block := domain.TimeBlock{
		Date:      p.Date,
		Start:     start,
		End:       end,
		Name:      name,
		Linked:    linked,
		Completed: matches[1] != " ",
	}
	if end.Before(start) {
		p.Warnings = append(p.Warnings, Warning{
			Line:    lineNo,
			Message: "entry ends at " + end.String() + " before it starts at " + start.String(),
		})
	}
	p.Blocks = append(p.Blocks, block)
}

func (p *DayPlan) skip(lineNo int, line, reason string) {
	p.Skipped = append(p.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: reason})
}

// splitLink strips [[...]] from a wiki-linked task name.
func splitLink(name string) (string, bool) {
	if len(name) >= len(linkOpen)+len(linkClose) &&
		strings.HasPrefix(name, linkOpen) && strings.HasSuffix(name, linkClose) {
		return name[len(linkOpen) : len(name)-len(linkClose)], true
	}
	return name, false
}

// looksTimed reports whether the text after the checkbox starts with a digit,
// which is how every planner entry begins.
func looksTimed(line string) bool {
	loc := checkboxPattern.FindStringIndex(line)
	rest := strings.TrimSpace(line[loc[1]:])
	return rest != "" && rest[0] >= '0' && rest[0] <= '9'
}
