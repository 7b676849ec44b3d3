package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/sim"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively in the terminal",
	Long: `Play the game month by month from an interactive prompt.

Type "help" at the prompt for the command list.

Example:
  decade play -f examples/configs/play.yaml`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	bold   = color.New(color.Bold)
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(false)

	ctx := context.Background()
	engine, closer, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	casino := rand.New(rand.NewSource(time.Now().UnixNano()))

	bold.Println("Welcome to Decade. Ten years. Make them count.")
	printStatus(engine)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		cmdName, rest := fields[0], fields[1:]
		switch cmdName {
		case "exit", "q":
			return nil
		case "help":
			printHelp()
		case "status", "s":
			printStatus(engine)
		case "messages":
			printMessages(engine)
		case "market":
			printMarket(engine)
		case "jobs":
			printJobs()
		case "courses":
			printCourses()
		case "next", "n":
			err = engine.Advance(ctx)
			if err == nil {
				printStatus(engine)
				printMessages(engine)
			}
		case "buy":
			err = tradeCmd(engine.Buy, rest)
		case "sell":
			err = tradeCmd(engine.Sell, rest)
		case "apply":
			err = oneArg(rest, engine.ApplyForJob)
		case "quit-job":
			err = engine.QuitJob()
		case "intensity":
			err = oneArg(rest, func(s string) error {
				return engine.SetIntensity(game.Intensity(s))
			})
		case "study":
			err = oneArg(rest, func(s string) error {
				level, perr := game.ParseEducationLevel(strings.ToUpper(s))
				if perr != nil {
					return perr
				}
				return engine.StartEducation(level)
			})
		case "course":
			err = oneArg(rest, engine.StartCourse)
		case "loan":
			err = amountCmd(engine.TakeLoan, rest)
		case "repay":
			err = amountCmd(engine.RepayDebt, rest)
		case "deposit":
			err = amountCmd(engine.DepositCash, rest)
		case "withdraw":
			err = amountCmd(engine.WithdrawDeposit, rest)
		case "coinflip":
			err = playCoinflip(engine, casino, rest)
		case "dice":
			err = playDice(engine, casino, rest)
		case "slots":
			err = playSlots(engine, casino, rest)
		default:
			yellow.Printf("unknown command %q, try \"help\"\n", cmdName)
			continue
		}

		if err != nil {
			if errors.Is(err, game.ErrGameOver) {
				red.Println("Game over.")
				bold.Printf("Final rank: %s\n", engine.Rank())
			} else {
				red.Println(err)
			}
			err = nil
		}
	}
}

func oneArg(args []string, fn func(string) error) error {
	if len(args) != 1 {
		return errors.New("expected exactly one argument")
	}
	return fn(args[0])
}

func tradeCmd(fn func(string, float64) error, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: buy|sell SYMBOL QTY")
	}
	qty, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad quantity %q", args[1])
	}
	return fn(strings.ToUpper(args[0]), qty)
}

func amountCmd(fn func(float64) error, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: COMMAND AMOUNT")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", args[0])
	}
	return fn(amount)
}

// playCoinflip is double or nothing on a fair coin.
func playCoinflip(engine *sim.Engine, rnd *rand.Rand, args []string) error {
	stake, err := parseStake(args)
	if err != nil {
		return err
	}
	if _, err := engine.PlaceBet(stake); err != nil {
		return err
	}
	if rnd.Float64() < 0.5 {
		green.Printf("Heads! You win $%.0f\n", stake*2)
		return engine.SettleBet(stake*2, "Coin Flip")
	}
	red.Println("Tails. The house thanks you.")
	return engine.SettleBet(0, "Coin Flip")
}

// playDice pays 5x when a d6 lands on 6.
func playDice(engine *sim.Engine, rnd *rand.Rand, args []string) error {
	stake, err := parseStake(args)
	if err != nil {
		return err
	}
	if _, err := engine.PlaceBet(stake); err != nil {
		return err
	}
	roll := rnd.Intn(6) + 1
	if roll == 6 {
		green.Printf("Rolled a 6! You win $%.0f\n", stake*5)
		return engine.SettleBet(stake*5, "Dice")
	}
	red.Printf("Rolled a %d. Better luck next month.\n", roll)
	return engine.SettleBet(0, "Dice")
}

// playSlots spins three reels: a triple pays 10x, a pair 2x.
func playSlots(engine *sim.Engine, rnd *rand.Rand, args []string) error {
	stake, err := parseStake(args)
	if err != nil {
		return err
	}
	if _, err := engine.PlaceBet(stake); err != nil {
		return err
	}

	symbols := []string{"7", "BAR", "🍒", "🍋", "🔔"}
	a, b, c := symbols[rnd.Intn(len(symbols))], symbols[rnd.Intn(len(symbols))], symbols[rnd.Intn(len(symbols))]
	fmt.Printf("  [ %s | %s | %s ]\n", a, b, c)

	switch {
	case a == b && b == c:
		green.Printf("Jackpot! You win $%.0f\n", stake*10)
		return engine.SettleBet(stake*10, "Slots")
	case a == b || b == c || a == c:
		green.Printf("Pair! You win $%.0f\n", stake*2)
		return engine.SettleBet(stake*2, "Slots")
	default:
		red.Println("No luck.")
		return engine.SettleBet(0, "Slots")
	}
}

func parseStake(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: coinflip|dice STAKE")
	}
	stake, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad stake %q", args[0])
	}
	return stake, nil
}

func printStatus(engine *sim.Engine) {
	st := engine.State()

	bold.Printf("%s  age %dy%dm\n", st.DateLabel(), st.AgeMonths/12, st.AgeMonths%12)
	fmt.Printf("  Cash $%.2f | Deposit $%.2f (%.2f%%) | Debt $%.2f (%.2f%%)\n",
		st.Cash, st.Deposit, st.DepositRate*100, st.Debt, st.LoanRate*100)
	fmt.Printf("  Credit %d (limit $%d) | Net worth $%.2f | %s\n",
		st.CreditScore, st.CreditLimit, st.NetWorth, engine.Rank())

	if st.CurrentJob != nil {
		fmt.Printf("  Job: %s (%s intensity)\n", st.CurrentJob.Title, st.Intensity)
	} else {
		fmt.Println("  Unemployed")
	}
	if st.ActiveStudy != nil {
		if st.ActiveStudy.Kind == game.StudyDegree {
			fmt.Printf("  Studying: %s, %d months left\n", st.ActiveStudy.Level.Label(), st.ActiveStudy.MonthsLeft)
		} else {
			fmt.Printf("  Course: %s, %d months left\n", st.ActiveStudy.CourseID, st.ActiveStudy.MonthsLeft)
		}
	}
}

func printMessages(engine *sim.Engine) {
	st := engine.State()
	n := len(st.Messages)
	if n > 5 {
		n = 5
	}
	for i := n - 1; i >= 0; i-- {
		m := st.Messages[i]
		line := fmt.Sprintf("  [%s] %s", m.Date, m.Text)
		switch m.Severity {
		case game.SeveritySuccess:
			green.Println(line)
		case game.SeverityDanger:
			red.Println(line)
		case game.SeverityWarning:
			yellow.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func printMarket(engine *sim.Engine) {
	st := engine.State()
	for _, in := range st.Instruments {
		fmt.Printf("  %-5s %-12s $%10.2f", in.Symbol, in.Name, in.Price)
		if in.Owned > 0 {
			fmt.Printf("  owned %.4f @ $%.2f", in.Owned, in.AverageCost)
		}
		fmt.Println()
	}
}

func printJobs() {
	for _, job := range game.Jobs {
		fmt.Printf("  %-12s %-20s $%-7.0f %s, %s+ exp %.1fy\n",
			job.ID, job.Title, job.Salary, job.Category.Label(),
			job.ReqEducation.Label(), job.ReqExpYears)
	}
}

func printCourses() {
	for _, c := range game.Courses {
		fmt.Printf("  %-12s %-24s $%-7.0f %d months, %s\n",
			c.ID, c.Title, c.Cost, c.DurationMonths, c.Description)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  status (s)           show the current month
  messages             recent narration
  market               instrument prices and holdings
  next (n)             advance one month
  buy SYMBOL QTY       buy an instrument
  sell SYMBOL QTY      sell an instrument
  jobs                 list the job catalog
  apply JOB_ID         apply for a job
  quit-job             resign
  intensity LEVEL      relaxed | normal | hard
  study LEVEL          HIGH_SCHOOL | BACHELOR | MASTER | MBA
  courses              list the course catalog
  course COURSE_ID     enroll in a course
  loan AMOUNT          borrow against your credit limit
  repay AMOUNT         pay down debt
  deposit AMOUNT       move cash to the savings deposit
  withdraw AMOUNT      move deposit back to cash
  coinflip STAKE       double or nothing
  dice STAKE           5x payout on a six
  slots STAKE          spin three reels
  exit (q)             leave the game`)
}
