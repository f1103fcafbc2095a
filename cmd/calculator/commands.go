package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gminnimk/Junit5-Practice/internal/calculator"
	"github.com/gminnimk/Junit5-Practice/internal/config"
	"github.com/gminnimk/Junit5-Practice/internal/console"
	"github.com/gminnimk/Junit5-Practice/internal/models"
	"github.com/gminnimk/Junit5-Practice/internal/scenario"
)

// app хранит то, что общее для всех команд: вывод и калькулятор.
type app struct {
	v       *viper.Viper
	out     io.Writer // Результаты
	errOut  io.Writer // Ошибки команд
	in      io.Reader
	cfg     *config.Config
	printer *console.Printer
	calc    *calculator.Calculator
}

func newApp(out, errOut io.Writer, in io.Reader) *app {
	return &app{v: viper.New(), out: out, errOut: errOut, in: in}
}

// execute запускает команду и возвращает код выхода.
func (a *app) execute(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		a.reportError(err)
		log.Printf("Завершение с ошибкой: %v", err)
		return 1
	}
	return 0
}

// reportError выводит ошибку команды в errOut в том же формате, что и результаты.
// Если конфигурация не загрузилась, формат неизвестен, и используется текст.
func (a *app) reportError(err error) {
	// Ошибка неверного оператора уже выведена вместе с вычислением.
	if errors.Is(err, calculator.ErrInvalidOperator) {
		return
	}
	format, precision := console.FormatText, -1
	if a.cfg != nil {
		format, precision = a.cfg.Format, a.cfg.Precision
	}
	console.NewPrinter(a.errOut, format, precision).PrintError(err.Error())
}

// rootCmd собирает дерево команд.
func (a *app) rootCmd() *cobra.Command {

	root := &cobra.Command{
		Use:           "calculator",
		Short:         "Четыре арифметические операции над двумя целыми числами",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.String("format", "text", "формат вывода: text или json")
	flags.Int("precision", -1, "знаков после запятой (-1 - кратчайшая запись)")
	flags.Bool("verbose", false, "писать служебный лог в stderr")
	for key, name := range map[string]string{"FORMAT": "format", "PRECISION": "precision", "VERBOSE": "verbose"} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("Ошибка привязки флага %s: %v", name, err)
		}
	}

	root.AddCommand(
		a.operateCmd(),
		a.validateCmd(),
		a.tableCmd(),
		a.repeatCmd(),
		a.multiplyCmd(),
	)
	return root
}

func (a *app) init() error {
	// Пока конфигурация не прочитана, лог молчит.
	log.SetOutput(io.Discard)

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	}

	a.cfg = cfg
	a.printer = console.NewPrinter(a.out, cfg.Format, cfg.Precision)
	a.calc = calculator.New()
	return nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("некорректное число %s %q: %w", name, s, err)
	}
	return n, nil
}

func (a *app) operateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operate A OPERATOR B",
		Short: "Вычислить A OPERATOR B (оператор: + - * /)",
		Long: "Вычисляет A OPERATOR B. Деление на ноль дает null, неизвестный оператор - ошибку.\n" +
			"Отрицательные числа передаются после \"--\": calculator operate -- -5 / 2",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseInt("A", args[0])
			if err != nil {
				return err
			}
			y, err := parseInt("B", args[2])
			if err != nil {
				return err
			}

			ev, err := models.Evaluate(a.calc, x, args[1], y)
			log.Printf("Evaluation %s: %d %s %d -> %s (ошибка: %v)", ev.ID, x, args[1], y, ev.ResultString(), err)
			a.printer.PrintEvaluation(ev)
			if err != nil {
				return fmt.Errorf("operate: %w", err)
			}
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate N",
		Short: "Проверить число (0 недопустим)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInt("N", args[0])
			if err != nil {
				return err
			}
			a.printer.PrintValidation(n, a.calc.ValidateNum(n))
			return nil
		},
	}
}

// runTable прогоняет сценарии и возвращает ошибку, если хоть один не прошел.
func (a *app) runTable(cases []scenario.Case) error {
	outcomes := scenario.Run(a.calc, cases)
	a.printer.PrintOutcomes(outcomes)
	if passed := scenario.Passed(outcomes); passed != len(outcomes) {
		return fmt.Errorf("не прошло сценариев: %d из %d", len(outcomes)-passed, len(outcomes))
	}
	return nil
}

func (a *app) tableCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Прогнать таблицу сценариев (по умолчанию встроенную)",
		Long: "Прогоняет таблицу сценариев. Без --file используется встроенная таблица.\n" +
			"Формат строки: \"a op b = want\", где want - число, null или error.\n" +
			"С --file=- сценарии читаются из stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases := scenario.Default()
			if file != "" {
				var err error
				cases, err = a.readCases(file)
				if err != nil {
					return err
				}
			}
			return a.runTable(cases)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "файл со сценариями (\"-\" - stdin)")
	return cmd
}

func (a *app) readCases(file string) ([]scenario.Case, error) {
	if file == "-" {
		return scenario.Read(a.in)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл сценариев: %w", err)
	}
	defer f.Close()
	return scenario.Read(f)
}

func (a *app) repeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repeat N",
		Short: "Прогнать встроенную таблицу сценариев N раз",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseInt("N", args[0])
			if err != nil {
				return err
			}
			if total < 1 {
				return fmt.Errorf("N должно быть не меньше 1, получено %d", total)
			}

			for i := 1; i <= total; i++ {
				a.printer.PrintLine("테스트 반복 : %d / %d", i, total)
				if err := a.runTable(scenario.Default()); err != nil {
					return fmt.Errorf("повтор %d: %w", i, err)
				}
			}
			return nil
		},
	}
}

func (a *app) multiplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "multiply K [N...]",
		Short: "Умножить K на каждое N (по умолчанию 1..9)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseInt("K", args[0])
			if err != nil {
				return err
			}

			nums := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
			if len(args) > 1 {
				nums = make([]int, 0, len(args)-1)
				for _, s := range args[1:] {
					n, err := parseInt("N", s)
					if err != nil {
						return err
					}
					nums = append(nums, n)
				}
			}

			for _, n := range nums {
				ev, err := models.Evaluate(a.calc, k, calculator.OpMul, n)
				if err != nil {
					return err
				}
				a.printer.PrintEvaluation(ev)
			}
			return nil
		},
	}
}
