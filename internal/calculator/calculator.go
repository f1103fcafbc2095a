package calculator // Ядро: четыре арифметические операции над двумя целыми числами

import (
	"errors"
	"math/big"
	"strconv"
)

// Поддерживаемые операторы.
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
)

// ErrInvalidOperator возвращается, если оператор не входит в {+, -, *, /}.
// Текст сообщения фиксирован, тесты сверяют его дословно.
var ErrInvalidOperator = errors.New("잘못된 연산자입니다.")

// Result: Необязательный результат вычисления.
// Устроен как sql.NullFloat64: Valid == false означает "ответа нет" (деление на ноль), а не ошибку.
type Result struct {
	Value float64
	Valid bool
}

// Float64 возвращает значение и признак его наличия.
func (r Result) Float64() (float64, bool) {
	return r.Value, r.Valid
}

// String: "null" для отсутствующего результата, иначе кратчайшая запись числа.
func (r Result) String() string {
	if !r.Valid {
		return "null"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func value(v float64) Result {
	return Result{Value: v, Valid: true}
}

// Calculator не хранит состояния, поэтому безопасен для одновременных вызовов.
type Calculator struct{}

// New создает новый экземпляр Calculator.
func New() *Calculator {
	return &Calculator{}
}

// toFloat округляет точное целое до float64 ровно один раз (к ближайшему, при равенстве - к четному).
func toFloat(x *big.Int) float64 {
	f, _ := new(big.Float).SetInt(x).Float64()
	return f
}

// Operate выполняет арифметическую операцию над a и b.
// Вычисление точное, округление до float64 происходит один раз в конце,
// поэтому результат верен и для операндов больше 2^53.
// Деление на ноль дает пустой Result без ошибки.
// Неизвестный оператор - ErrInvalidOperator.
func (c *Calculator) Operate(a int, operator string, b int) (Result, error) {
	x, y := big.NewInt(int64(a)), big.NewInt(int64(b))
	switch operator {
	case OpAdd:
		return value(toFloat(new(big.Int).Add(x, y))), nil
	case OpSub:
		return value(toFloat(new(big.Int).Sub(x, y))), nil
	case OpMul:
		return value(toFloat(new(big.Int).Mul(x, y))), nil
	case OpDiv:
		if !c.ValidateNum(b) {
			return Result{}, nil // Знаменатель 0: результата нет, но это не ошибка
		}
		// Настоящее деление, без усечения до целого. Делимое и делитель точны, частное округляется до 53 бит.
		q := new(big.Float).SetPrec(53).Quo(new(big.Float).SetInt(x), new(big.Float).SetInt(y))
		f, _ := q.Float64()
		return value(f), nil
	default:
		return Result{}, ErrInvalidOperator
	}
}

// ValidateNum: 0 недопустим, любое другое целое (и отрицательное тоже) допустимо.
func (c *Calculator) ValidateNum(n int) bool {
	return n != 0
}
