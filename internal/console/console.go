package console // Вывод результатов калькулятора в консоль (текст или JSON)

import (
	"encoding/json" // Для режима JSON
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/gminnimk/Junit5-Practice/internal/models"
	"github.com/gminnimk/Junit5-Practice/internal/scenario"
)

// Форматы вывода.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Printer пишет результаты в Out в выбранном формате.
// Precision < 0 означает кратчайшую запись числа.
// В JSON результат округляется до Precision знаков и остается числом.
type Printer struct {
	Out       io.Writer
	Format    string
	Precision int
}

// NewPrinter создает Printer.
func NewPrinter(out io.Writer, format string, precision int) *Printer {
	return &Printer{Out: out, Format: format, Precision: precision}
}

// printJSON: Сначала полностью маршалирует payload, и только потом пишет его.
// Если маршалирование не удалось, вместо него выводится стандартная ошибка.
func (p *Printer) printJSON(payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Ошибка при маршалировании JSON ответа: %v", err)
		p.PrintError("internal error")
		return
	}
	fmt.Fprintln(p.Out, string(response))
}

func (p *Printer) formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', p.Precision, 64)
}

// formatResult: "null" для отсутствующего результата.
func (p *Printer) formatResult(v *float64) string {
	if v == nil {
		return "null"
	}
	return p.formatFloat(*v)
}

// rounded возвращает копию ev, где результат округлен до Precision знаков.
// Исходная запись не меняется. NaN и бесконечности остаются как есть.
func (p *Printer) rounded(ev *models.Evaluation) *models.Evaluation {
	if p.Precision < 0 || ev == nil || ev.Result == nil {
		return ev
	}
	v, err := strconv.ParseFloat(p.formatFloat(*ev.Result), 64)
	if err != nil {
		return ev
	}
	out := *ev
	out.Result = &v
	return &out
}

// PrintEvaluation выводит одно вычисление: "5 / 2 = 2.5", "5 / 0 = null" или "5 ? 2: <ошибка>".
func (p *Printer) PrintEvaluation(ev *models.Evaluation) {
	if p.Format == FormatJSON {
		p.printJSON(p.rounded(ev))
		return
	}
	if ev.Failed() {
		fmt.Fprintf(p.Out, "%d %s %d: %s\n", ev.A, ev.Operator, ev.B, ev.Error)
		return
	}
	fmt.Fprintf(p.Out, "%d %s %d = %s\n", ev.A, ev.Operator, ev.B, p.formatResult(ev.Result))
}

// PrintValidation выводит результат ValidateNum.
func (p *Printer) PrintValidation(n int, valid bool) {
	if p.Format == FormatJSON {
		p.printJSON(map[string]interface{}{"number": n, "valid": valid})
		return
	}
	fmt.Fprintf(p.Out, "validateNum(%d) = %t\n", n, valid)
}

type outcomeJSON struct {
	Want       string             `json:"want"`
	Passed     bool               `json:"passed"`
	Evaluation *models.Evaluation `json:"evaluation"`
}

// PrintOutcomes выводит прогон таблицы сценариев и итоговую строку.
func (p *Printer) PrintOutcomes(outcomes []scenario.Outcome) {
	if p.Format == FormatJSON {
		payload := make([]outcomeJSON, 0, len(outcomes))
		for _, o := range outcomes {
			payload = append(payload, outcomeJSON{Want: o.Case.Want.String(), Passed: o.Passed, Evaluation: p.rounded(o.Evaluation)})
		}
		p.printJSON(payload)
		return
	}

	for _, o := range outcomes {
		status := "PASS"
		if !o.Passed {
			status = "FAIL"
		}
		ev := o.Evaluation
		got := p.formatResult(ev.Result)
		if ev.Failed() {
			got = "error: " + ev.Error
		}
		fmt.Fprintf(p.Out, "[%s] %d %s %d -> %s (want %s)\n", status, ev.A, ev.Operator, ev.B, got, o.Case.Want)
	}
	fmt.Fprintf(p.Out, "%d/%d passed\n", scenario.Passed(outcomes), len(outcomes))
}

// PrintLine выводит произвольное сообщение (только в текстовом режиме).
func (p *Printer) PrintLine(format string, args ...interface{}) {
	if p.Format == FormatJSON {
		return
	}
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// PrintError: текст "error: msg" или JSON {"error": "msg"}.
func (p *Printer) PrintError(message string) {
	if p.Format == FormatJSON {
		errorResponse := map[string]string{"error": message}
		// Карта строк всегда маршалируется, поэтому рекурсии через printJSON не будет.
		response, _ := json.Marshal(errorResponse)
		fmt.Fprintln(p.Out, string(response))
		return
	}
	fmt.Fprintf(p.Out, "error: %s\n", message)
}
