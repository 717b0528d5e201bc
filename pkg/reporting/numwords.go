package reporting

import "strings"

var (
	smallNumbers = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

	scales = []struct {
		value int
		name  string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// numberToWords spells n as an English cardinal, e.g. 121 is
// "one hundred and twenty-one".
func numberToWords(n int) string {
	if n < 0 {
		return "minus " + numberToWords(-n)
	}
	if n < 20 {
		return smallNumbers[n]
	}
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, numberToWords(n/s.value)+" "+s.name)
			n %= s.value
		}
	}
	if n >= 100 {
		parts = append(parts, smallNumbers[n/100]+" hundred")
		n %= 100
	}
	if n > 0 {
		var rest string
		switch {
		case n < 20:
			rest = smallNumbers[n]
		case n%10 == 0:
			rest = tens[n/10]
		default:
			rest = tens[n/10] + "-" + smallNumbers[n%10]
		}
		if len(parts) > 0 {
			rest = "and " + rest
		}
		parts = append(parts, rest)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
