package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dhlotto/config"
	"dhlotto/logger"
	"dhlotto/scheduler"
	"dhlotto/store"
	"dhlotto/tasks"
	"dhlotto/telegram"
)

var (
	cfg config.Config
	bot *telegram.Bot

	flagGames  int
	flagDryRun bool
)

var rootCmd = &cobra.Command{
	Use:           "dhlotto",
	Short:         "동행복권 로또 6/45 자동 구매 프로그램",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(); err != nil {
			return fmt.Errorf("로그 초기화 실패: %w", err)
		}

		log.Println("╔════════════════════════════════════════╗")
		log.Println("║    동행복권 로또 6/45 자동 구매 프로그램    ║")
		log.Println("╚════════════════════════════════════════╝")
		log.Println()

		// 자격증명 누락이나 게임 수 범위 초과는 여기서 치명적으로 실패합니다
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("설정 로드 실패: %w", err)
		}

		if flagGames > 0 {
			cfg.GameCount = flagGames
			if cfg.GameCount < 1 || cfg.GameCount > 5 {
				return fmt.Errorf("게임 수는 1~5 사이여야 합니다: %d", cfg.GameCount)
			}
		}

		cfg.Print()
		log.Println()

		if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
			bot = telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
			log.Println("✅ 텔레그램 봇 초기화 완료")
		} else {
			log.Println("⚠️  텔레그램 설정이 없습니다. 알림은 전송되지 않습니다.")
		}
		log.Println()

		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "예치금 확인 후 즉시 1회 구매",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tasks.CheckBalance(cfg, notifier())
		tasks.BuyLotto(cfg, st, notifier(), flagDryRun)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "예치금 확인만 수행",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks.CheckBalance(cfg, notifier())
		return nil
	},
}

var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "최근 회차 당첨번호 확인 및 구매 이력 대조",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tasks.CheckWinners(cfg, st, notifier())
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "스케줄러 모드로 실행 (구매/예치금/당첨 확인 주기 실행)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		return runScheduler(st)
	},
}

func notifier() tasks.Notifier {
	if bot == nil {
		return nil
	}
	return bot
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("저장소 열기 실패: %w", err)
	}
	return st, nil
}

// runScheduler는 스케줄러를 등록하고 종료 신호까지 대기합니다
func runScheduler(st *store.Store) error {
	log.Println("🔄 스케줄러 모드 시작")
	log.Println()
	log.Println("    예약된 스케줄:")
	log.Printf("    - 당첨 확인: %s\n", cfg.WinnerSchedule)
	log.Printf("    - 예치금 확인: %s\n", cfg.BalanceSchedule)
	log.Printf("    - 로또 구매: %s\n", cfg.BuySchedule)
	log.Println()

	sched := scheduler.New()

	if err := sched.AddFunc(cfg.BalanceSchedule, func() {
		tasks.CheckBalance(cfg, notifier())
	}); err != nil {
		return fmt.Errorf("예치금 확인 스케줄 등록 실패: %w", err)
	}

	if err := sched.AddFunc(cfg.BuySchedule, func() {
		tasks.BuyLotto(cfg, st, notifier(), false)
	}); err != nil {
		return fmt.Errorf("로또 구매 스케줄 등록 실패: %w", err)
	}

	if err := sched.AddFunc(cfg.WinnerSchedule, func() {
		tasks.CheckWinners(cfg, st, notifier())
	}); err != nil {
		return fmt.Errorf("당첨 확인 스케줄 등록 실패: %w", err)
	}

	sched.Start()

	log.Println("✅ 스케줄러 시작 완료")
	log.Println("   종료하려면 Ctrl+C를 누르세요.")
	log.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println()
	log.Println("⚠️  종료 신호를 받았습니다. 스케줄러를 중지합니다...")
	sched.Stop()
	log.Println("✅ 프로그램 종료")
	return nil
}

func main() {
	defer logger.Close()

	buyCmd.Flags().IntVar(&flagGames, "games", 0, "구매할 게임 수 (1~5, 설정값 무시)")
	buyCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "테스트 모드 (실제 구매 안함)")

	rootCmd.AddCommand(buyCmd, balanceCmd, winnersCmd, serveCmd)

	// 서브커맨드 없이 실행하면 구매를 수행합니다 (기본 모드)
	rootCmd.RunE = buyCmd.RunE

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("❌ %v\n", err)
	}
}
