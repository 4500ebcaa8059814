// Package paystub pulls pay date, gross pay and deductions out of text that
// was extracted from a paystub PDF.
//
// Extraction is best effort. It never fails: whatever cannot be inferred with
// confidence is left nil for the user to fill in. The employer name is never
// inferred.
package paystub

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
)

// Result is a partial paycheck. Nil fields were not found.
type Result struct {
	EmployerName *string       `json:"employer_name"`
	PayDate      *calendar.Date `json:"pay_date"`
	GrossAmount  *money.Money  `json:"gross_amount"`
	Deductions   []Deduction   `json:"deductions"`
}

// Deduction is a deduction line recognised by its label.
type Deduction struct {
	Name     string                   `json:"name"`
	Amount   money.Money              `json:"amount"`
	Category models.DeductionCategory `json:"category"`
	IsPreTax bool                     `json:"is_pre_tax"`
}

// Line is one trimmed, non-empty line of the input with its position.
type Line struct {
	Index int
	Text  string
}

// State accumulates what the rules have found so far.
type State struct {
	Result Result

	payDateTried   bool
	labelsSeen     map[string]bool
	deductionLines []int
}

// Rule pairs a line pattern with the interpreter run on each matching line.
// Rules run in order, each over every line, so a later rule can depend on
// what earlier rules found.
type Rule struct {
	Name string
	// Pattern selects the lines the rule looks at.
	Pattern *regexp.Regexp
	// Exclude, when set, vetoes lines that also match it.
	Exclude *regexp.Regexp
	// Enabled, when set, gates the whole rule on the current state.
	Enabled   func(st *State) bool
	Interpret func(st *State, line Line, match []string)
}

// Apply runs the rule over the lines.
func (r Rule) Apply(st *State, lines []Line) {
	if r.Enabled != nil && !r.Enabled(st) {
		return
	}
	for _, line := range lines {
		if r.Exclude != nil && r.Exclude.MatchString(line.Text) {
			continue
		}
		match := r.Pattern.FindStringSubmatch(line.Text)
		if match == nil {
			continue
		}
		r.Interpret(st, line, match)
	}
}

// Extractor runs an ordered rule list over paystub text.
type Extractor struct {
	rules []Rule
}

// NewExtractor builds an extractor whose deduction rules come from labels.
func NewExtractor(labels []Label) *Extractor {
	rules := []Rule{payDateRule(), grossRule(), taxableIncomeRule()}
	for _, l := range labels {
		rules = append(rules, deductionRule(l))
	}
	return &Extractor{rules: rules}
}

var defaultExtractor = NewExtractor(defaultLabels)

// Extract runs the default extractor.
func Extract(text string) Result {
	return defaultExtractor.Extract(text)
}

// Rules returns the extractor's rules in execution order.
func (e *Extractor) Rules() []Rule {
	return e.rules
}

// Extract applies every rule and returns the partial paycheck.
func (e *Extractor) Extract(text string) Result {
	lines := SplitLines(text)
	st := &State{labelsSeen: make(map[string]bool)}
	for _, r := range e.rules {
		r.Apply(st, lines)
	}
	st.sortDeductions()
	if st.Result.Deductions == nil {
		st.Result.Deductions = []Deduction{}
	}
	return st.Result
}

// SplitLines splits text into trimmed, non-empty lines.
func SplitLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, Line{Index: len(lines), Text: trimmed})
	}
	return lines
}

// sortDeductions restores line order; label rules run one after another.
func (st *State) sortDeductions() {
	sort.Stable(byLine{deductions: st.Result.Deductions, lines: st.deductionLines})
}

type byLine struct {
	deductions []Deduction
	lines      []int
}

func (b byLine) Len() int           { return len(b.deductions) }
func (b byLine) Less(i, j int) bool { return b.lines[i] < b.lines[j] }
func (b byLine) Swap(i, j int) {
	b.deductions[i], b.deductions[j] = b.deductions[j], b.deductions[i]
	b.lines[i], b.lines[j] = b.lines[j], b.lines[i]
}

var (
	grossPattern         = regexp.MustCompile(`(?i)gross pay|total gross|gross earnings|total earnings`)
	taxableIncomePattern = regexp.MustCompile(`(?i)fed(?:eral)? taxable income`)
	summaryLinePattern   = regexp.MustCompile(`(?i)taxable income|total taxes`)
)

// payDateRule takes the first date-looking text in the document. If that
// text is not a real date the pay date stays unset.
func payDateRule() Rule {
	return Rule{
		Name:    "pay_date",
		Pattern: datePattern,
		Enabled: func(st *State) bool { return !st.payDateTried },
		Interpret: func(st *State, _ Line, match []string) {
			if st.payDateTried {
				return
			}
			st.payDateTried = true
			if d, ok := parseDateMatch(match); ok {
				st.Result.PayDate = &d
			}
		},
	}
}

// grossRule keeps the largest amount seen on any gross-pay line.
func grossRule() Rule {
	return Rule{
		Name:    "gross",
		Pattern: grossPattern,
		Interpret: func(st *State, line Line, _ []string) {
			st.offerGross(line.Text)
		},
	}
}

// taxableIncomeRule substitutes federal taxable income for gross when no
// gross-pay line produced an amount.
func taxableIncomeRule() Rule {
	return Rule{
		Name:    "taxable_income_fallback",
		Pattern: taxableIncomePattern,
		Enabled: func(st *State) bool { return st.Result.GrossAmount == nil },
		Interpret: func(st *State, line Line, _ []string) {
			st.offerGross(line.Text)
		},
	}
}

func (st *State) offerGross(text string) {
	amt, ok := lineAmount(text)
	if !ok {
		return
	}
	if st.Result.GrossAmount == nil || amt > *st.Result.GrossAmount {
		st.Result.GrossAmount = &amt
	}
}

// deductionRule records the first positive amount found on a line carrying
// the label as a whole word. Summary lines are skipped.
func deductionRule(l Label) Rule {
	return Rule{
		Name:    "deduction:" + l.Name,
		Pattern: wholeWord(l.Name),
		Exclude: summaryLinePattern,
		Interpret: func(st *State, line Line, _ []string) {
			if st.labelsSeen[l.Name] {
				return
			}
			amt, ok := lineAmount(line.Text)
			if !ok || !amt.IsPositive() {
				return
			}
			st.labelsSeen[l.Name] = true
			st.Result.Deductions = append(st.Result.Deductions, Deduction{
				Name:     l.Name,
				Amount:   amt,
				Category: l.Category,
				IsPreTax: l.PreTax,
			})
			st.deductionLines = append(st.deductionLines, line.Index)
		},
	}
}
