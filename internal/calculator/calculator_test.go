package calculator

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/big"
	"os"
	"sync"
	"testing"
)

// TestMain выполняется один раз на весь пакет: до и после всех тестов.
func TestMain(m *testing.M) {
	log.Println("모든 테스트 코드가 실행되기 전에 최초로 수행")
	code := m.Run()
	log.Println("모든 테스트 코드가 수행된 후 마지막으로 수행")
	os.Exit(code)
}

// TestOperate_Valid тестирует Operate для корректных операций.
func TestOperate_Valid(t *testing.T) {
	// Тестовые случаи: a, оператор, b, ожидаемый результат.
	testCases := []struct {
		a        int
		operator string
		b        int
		expected float64
	}{
		{4, "+", 3, 7},
		{4, "*", 3, 12},
		{5, "/", 2, 2.5},
		{5, "-", 8, -3},
		{7, "/", 3, 7.0 / 3.0}, // Деление с плавающей точкой
		{-5, "+", 10, 5},       // Отрицательные числа
		{-10, "/", -4, 2.5},
		{0, "*", 5, 0}, // Ноль как операнд
		{0, "/", 5, 0},
		{1, "/", 3, 1.0 / 3.0},
		{math.MaxInt32, "+", math.MaxInt32, 2 * float64(math.MaxInt32)},
		{1<<53 + 1, "+", 1, 1<<53 + 2},               // Операнд не представим в float64, сумма представима
		{1<<53 + 1, "-", 1, 1 << 53},                 // То же для разности
		{math.MaxInt64, "+", math.MaxInt64, 0x1p64},  // 2^64 - 2 округляется к 2^64, без переполнения int
		{math.MinInt64, "-", 1, -0x1p63},             // -2^63 - 1 округляется к -2^63
		{math.MaxInt64, "*", math.MaxInt64, 0x1p126}, // (2^63 - 1)^2 округляется к 2^126
		{1<<53 + 1, "/", 3, 3002399751580331},        // Частное точно целое
		{math.MinInt64, "/", -1, 0x1p63},             // Целочисленное деление здесь переполнилось бы
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d %s %d", tc.a, tc.operator, tc.b), func(t *testing.T) {
			calc := New() // Новый экземпляр на каждый случай

			actual, err := calc.Operate(tc.a, tc.operator, tc.b)
			if err != nil {
				t.Fatalf("%d %s %d: ожидался nil error, получен: %v", tc.a, tc.operator, tc.b, err)
			}
			if !actual.Valid {
				t.Fatalf("%d %s %d: результат отсутствует", tc.a, tc.operator, tc.b)
			}

			tolerance := 1e-9 // Абсолютная погрешность: для больших чисел это точное сравнение
			if math.Abs(actual.Value-tc.expected) > tolerance {
				t.Errorf("%d %s %d: ожидалось %.10f, получено %.10f", tc.a, tc.operator, tc.b, tc.expected, actual.Value)
			}
		})
	}
}

// TestOperate_DivideByZero: деление на ноль дает пустой результат, а не ошибку и не 0.
func TestOperate_DivideByZero(t *testing.T) {
	for _, a := range []int{5, 0, -5} {
		t.Run(fmt.Sprintf("%d / 0", a), func(t *testing.T) {
			res, err := New().Operate(a, "/", 0)
			if err != nil {
				t.Fatalf("ожидался nil error, получен: %v", err)
			}
			if res.Valid {
				t.Errorf("ожидался пустой результат, получено %v", res.Value)
			}
			if res.String() != "null" {
				t.Errorf("String() = %q, ожидалось \"null\"", res.String())
			}
		})
	}
}

// TestOperate_InvalidOperator тестирует Operate для неизвестных операторов.
func TestOperate_InvalidOperator(t *testing.T) {
	operators := []string{"?", "", "%", "//", "plus", " +"}

	for _, op := range operators {
		t.Run(fmt.Sprintf("%q", op), func(t *testing.T) {
			res, err := New().Operate(5, op, 2)
			if err == nil {
				t.Fatalf("оператор %q: ожидалась ошибка, получен результат %v", op, res)
			}
			if !errors.Is(err, ErrInvalidOperator) {
				t.Errorf("оператор %q: ожидалась ErrInvalidOperator, получено %v", op, err)
			}
			if err.Error() != "잘못된 연산자입니다." {
				t.Errorf("оператор %q: неверное сообщение %q", op, err.Error())
			}
			if res.Valid {
				t.Errorf("оператор %q: при ошибке результат должен быть пустым", op)
			}
		})
	}
}

// TestOperate_Idempotent: одинаковые входные данные дают одинаковый ответ.
func TestOperate_Idempotent(t *testing.T) {
	calc := New()
	for _, op := range []string{"+", "-", "*", "/"} {
		for _, b := range []int{-3, 0, 2} {
			first, err1 := calc.Operate(5, op, b)
			second, err2 := calc.Operate(5, op, b)
			if first != second || err1 != err2 {
				t.Errorf("5 %s %d: %v/%v != %v/%v", op, b, first, err1, second, err2)
			}
		}
	}
}

// TestValidateNum: недопустим только 0.
func TestValidateNum(t *testing.T) {
	testCases := []struct {
		n        int
		expected bool
	}{
		{9, true},
		{0, false},
		{-1, true},
		{math.MaxInt64, true},
		{math.MinInt64, true},
	}

	calc := New()
	for _, tc := range testCases {
		if got := calc.ValidateNum(tc.n); got != tc.expected {
			t.Errorf("ValidateNum(%d) = %v, ожидалось %v", tc.n, got, tc.expected)
		}
	}
}

// exact возвращает точный результат, округленный до float64 один раз (через big.Rat).
func exact(a int, operator string, b int) float64 {
	x, y := new(big.Rat).SetInt64(int64(a)), new(big.Rat).SetInt64(int64(b))
	var r *big.Rat
	switch operator {
	case "+":
		r = new(big.Rat).Add(x, y)
	case "-":
		r = new(big.Rat).Sub(x, y)
	case "*":
		r = new(big.Rat).Mul(x, y)
	default:
		r = new(big.Rat).Quo(x, y)
	}
	f, _ := r.Float64()
	return f
}

// TestOperate_LargeOperands: результат совпадает с точным значением, округленным до float64, бит в бит.
func TestOperate_LargeOperands(t *testing.T) {
	operands := []int{
		1<<53 - 1, 1 << 53, 1<<53 + 1, 1<<53 + 3, -(1<<53 + 1),
		1<<62 + 1, math.MaxInt64, math.MaxInt64 - 1, math.MinInt64, math.MinInt64 + 1,
		1, -1, 3, 7, 1<<31 + 7,
	}

	calc := New()
	for _, op := range []string{"+", "-", "*", "/"} {
		for _, a := range operands {
			for _, b := range operands {
				got, err := calc.Operate(a, op, b)
				if err != nil {
					t.Fatalf("%d %s %d: ошибка %v", a, op, b, err)
				}
				if want := exact(a, op, b); !got.Valid || got.Value != want {
					t.Errorf("%d %s %d = %v, ожидалось %v", a, op, b, got, want)
				}
			}
		}
	}
}

// TestOperate_Concurrent: Operate и ValidateNum можно вызывать одновременно из разных горутин.
// Гонки ловит go test -race.
func TestOperate_Concurrent(t *testing.T) {
	calc := New() // Один экземпляр на все горутины
	operators := []string{"+", "-", "*", "/", "?"}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				op := operators[(g+i)%len(operators)]
				b := i % 4 // Встречается и ноль
				res, err := calc.Operate(g, op, b)
				switch {
				case op == "?":
					if !errors.Is(err, ErrInvalidOperator) {
						t.Errorf("%d ? %d: ожидалась ErrInvalidOperator, получено %v", g, b, err)
					}
				case op == "/" && b == 0:
					if err != nil || res.Valid {
						t.Errorf("%d / 0: ожидался пустой результат, получено %v, %v", g, res, err)
					}
				default:
					if err != nil || !res.Valid || res.Value != exact(g, op, b) {
						t.Errorf("%d %s %d = %v, %v", g, op, b, res, err)
					}
				}
				if calc.ValidateNum(b) != (b != 0) {
					t.Errorf("ValidateNum(%d) неверен", b)
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestResult_String(t *testing.T) {
	testCases := []struct {
		res      Result
		expected string
	}{
		{Result{Value: 2.5, Valid: true}, "2.5"},
		{Result{Value: 7, Valid: true}, "7"},
		{Result{Value: -0.125, Valid: true}, "-0.125"},
		{Result{}, "null"},
		{Result{Value: 3}, "null"}, // Без Valid значение игнорируется
	}
	for _, tc := range testCases {
		if got := tc.res.String(); got != tc.expected {
			t.Errorf("%+v.String() = %q, ожидалось %q", tc.res, got, tc.expected)
		}
	}

	v, ok := Result{Value: 1.5, Valid: true}.Float64()
	if !ok || v != 1.5 {
		t.Errorf("Float64() = %v, %v", v, ok)
	}
}
