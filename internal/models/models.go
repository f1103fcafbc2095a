package models

import (
	"strconv"
	"time" // Для типа time.Time

	"github.com/google/uuid"

	"github.com/gminnimk/Junit5-Practice/internal/calculator"
)

// Evaluation: Один вызов Calculator.Operate вместе с его исходом.
// Каждая строка вывода в консоль относится ровно к одной Evaluation.
type Evaluation struct {
	ID        string    `json:"id"`              // ID вычисления (UUID)
	A         int       `json:"a"`               // Первый операнд
	Operator  string    `json:"operator"`        // Оператор ("+", "-", "*", "/" или что угодно неверное)
	B         int       `json:"b"`               // Второй операнд
	Result    *float64  `json:"result"`          // nil, если результата нет (деление на ноль или ошибка). В JSON - null.
	Error     string    `json:"error,omitempty"` // Сообщение об ошибке, если оператор неверный
	CreatedAt time.Time `json:"created_at"`      // Время вычисления
}

// NewEvaluation создает запись для будущего вычисления с новым UUID.
func NewEvaluation(a int, operator string, b int) *Evaluation {
	return &Evaluation{
		ID:        uuid.New().String(),
		A:         a,
		Operator:  operator,
		B:         b,
		CreatedAt: time.Now(),
	}
}

// Complete заполняет запись результатом Operate.
func (e *Evaluation) Complete(res calculator.Result, err error) {
	if err != nil {
		e.Result = nil
		e.Error = err.Error()
		return
	}
	e.Error = ""
	if v, ok := res.Float64(); ok {
		e.Result = &v
	} else {
		e.Result = nil
	}
}

// Failed сообщает, завершилось ли вычисление ошибкой.
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// ResultString: "null" для отсутствующего результата, иначе кратчайшая запись числа.
func (e *Evaluation) ResultString() string {
	if e.Result == nil {
		return "null"
	}
	return strconv.FormatFloat(*e.Result, 'f', -1, 64)
}

// Evaluate выполняет операцию и сразу возвращает заполненную запись вместе с исходной ошибкой.
func Evaluate(calc *calculator.Calculator, a int, operator string, b int) (*Evaluation, error) {
	ev := NewEvaluation(a, operator, b)
	res, err := calc.Operate(a, operator, b)
	ev.Complete(res, err)
	return ev, err
}
