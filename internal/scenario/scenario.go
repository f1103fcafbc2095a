package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gminnimk/Junit5-Practice/internal/calculator"
	"github.com/gminnimk/Junit5-Practice/internal/models"
)

// Kind - что ожидается от вычисления.
type Kind int

const (
	KindValue           Kind = iota // Ожидается число
	KindAbsent                      // Ожидается пустой результат (деление на ноль)
	KindInvalidOperator             // Ожидается ErrInvalidOperator
)

// Expect: ожидаемый исход одного сценария.
type Expect struct {
	Kind  Kind
	Value float64 // Используется только для KindValue
}

// Value: ожидается число v.
func Value(v float64) Expect { return Expect{Kind: KindValue, Value: v} }

// Absent: ожидается пустой результат.
func Absent() Expect { return Expect{Kind: KindAbsent} }

// InvalidOperator: ожидается ErrInvalidOperator.
func InvalidOperator() Expect { return Expect{Kind: KindInvalidOperator} }

// String для вывода в консоль.
func (e Expect) String() string {
	switch e.Kind {
	case KindAbsent:
		return "null"
	case KindInvalidOperator:
		return "error: InvalidOperator"
	default:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	}
}

// Case - одна строка таблицы сценариев.
type Case struct {
	A        int
	Operator string
	B        int
	Want     Expect
}

// Outcome - результат прогона одного Case.
type Outcome struct {
	Case       Case
	Evaluation *models.Evaluation
	Passed     bool
}

// Default возвращает стандартную таблицу сценариев.
func Default() []Case {
	return []Case{
		{A: 5, Operator: "/", B: 2, Want: Value(2.5)},
		{A: 5, Operator: "/", B: 0, Want: Absent()},
		{A: 5, Operator: "?", B: 2, Want: InvalidOperator()},
		{A: 4, Operator: "+", B: 3, Want: Value(7)},
		{A: 4, Operator: "*", B: 3, Want: Value(12)},
	}
}

// Run прогоняет все сценарии через calc.
func Run(calc *calculator.Calculator, cases []Case) []Outcome {
	outcomes := make([]Outcome, 0, len(cases))
	for _, c := range cases {
		ev, err := models.Evaluate(calc, c.A, c.Operator, c.B)
		passed := matches(c.Want, ev, err)
		if !passed {
			log.Printf("Scenario.Run: %d %s %d: ожидалось %s, получено %s (ошибка: %v)", c.A, c.Operator, c.B, c.Want, ev.ResultString(), err)
		}
		outcomes = append(outcomes, Outcome{Case: c, Evaluation: ev, Passed: passed})
	}
	return outcomes
}

func matches(want Expect, ev *models.Evaluation, err error) bool {
	switch want.Kind {
	case KindInvalidOperator:
		return errors.Is(err, calculator.ErrInvalidOperator)
	case KindAbsent:
		return err == nil && ev.Result == nil
	default:
		return err == nil && ev.Result != nil && *ev.Result == want.Value
	}
}

// Passed считает успешные исходы.
func Passed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Passed {
			n++
		}
	}
	return n
}

// ParseLine разбирает строку вида "5 / 2 = 2.5".
// Это не парсер выражений: ровно пять полей через пробелы, операнды - целые числа.
// Ожидание после "=" обязательно и может быть числом, "null" или "error".
func ParseLine(line string) (Case, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Case{}, fmt.Errorf("ожидалось 5 полей (a op b = want), получено %d", len(fields))
	}

	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return Case{}, fmt.Errorf("некорректный операнд a %q: %w", fields[0], err)
	}
	b, err := strconv.Atoi(fields[2])
	if err != nil {
		return Case{}, fmt.Errorf("некорректный операнд b %q: %w", fields[2], err)
	}
	if fields[3] != "=" {
		return Case{}, fmt.Errorf("ожидался знак '=', получено %q", fields[3])
	}
	want, err := parseExpect(fields[4])
	if err != nil {
		return Case{}, err
	}
	return Case{A: a, Operator: fields[1], B: b, Want: want}, nil
}

func parseExpect(s string) (Expect, error) {
	switch strings.ToLower(s) {
	case "null":
		return Absent(), nil
	case "error":
		return InvalidOperator(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Expect{}, fmt.Errorf("некорректное ожидание %q: %w", s, err)
	}
	return Value(v), nil
}

// Read читает сценарии построчно. Пустые строки и строки, начинающиеся с '#', пропускаются.
func Read(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", lineNo, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения сценариев: %w", err)
	}
	return cases, nil
}
