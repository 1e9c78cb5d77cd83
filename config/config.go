package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// 스케줄 기본값 (한국 시간 기준)
const (
	DefaultBuySchedule     = "0 19 * * 1"  // 매주 월요일 오후 7시 구매
	DefaultWinnerSchedule  = "50 12 * * 1" // 매주 월요일 오후 12시 50분 당첨 확인
	DefaultBalanceSchedule = "0 13 * * 1"  // 매주 월요일 오후 1시 예치금 확인
)

// Account는 개별 계정 정보를 담는 구조체입니다
type Account struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Config는 전체 설정을 담는 구조체입니다
type Config struct {
	Accounts []Account `json:"accounts" validate:"required,min=1,dive"`

	// 한 회차당 구매 게임 수 (1~5)
	GameCount int `json:"gameCount" validate:"gte=1,lte=5"`
	// 번호 선택 방식: auto / manual / semiauto
	GenType string `json:"genType,omitempty" validate:"omitempty,oneof=auto manual semiauto"`
	// 포털 버전별 자동 genType 코드 ("0" 또는 "3")
	AutoGenCode string `json:"autoGenCode,omitempty" validate:"omitempty,oneof=0 3"`

	TelegramBotToken string `json:"telegramBotToken,omitempty"`
	TelegramChatID   string `json:"telegramChatId,omitempty"`

	StorePath string `json:"storePath,omitempty"`

	BuySchedule     string `json:"buySchedule,omitempty"`
	WinnerSchedule  string `json:"winnerSchedule,omitempty"`
	BalanceSchedule string `json:"balanceSchedule,omitempty"`
}

var validate = validator.New()

// Load는 설정을 로드합니다.
// .env → 환경변수 → config.json → 대화형 입력 순서로 시도하고,
// 어느 경로로 읽었든 마지막에 유효성 검사를 통과해야 합니다.
func Load() (Config, error) {
	// .env 파일이 있으면 환경변수로 끌어옵니다 (없으면 무시)
	_ = godotenv.Load()

	config, err := LoadFromEnv()
	if err != nil {
		log.Printf("환경변수 로드 실패: %v\n", err)

		config, err = LoadFromFile("config.json")
		if err != nil {
			log.Printf("설정 파일 로드 실패: %v\n", err)
			log.Println("설정 정보를 입력해주세요:")
			config, err = LoadInteractive()
			if err != nil {
				return Config{}, err
			}
		}
	}

	config.applyDefaults()

	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("설정 유효성 검사 실패: %w", err)
	}

	return config, nil
}

// LoadFromEnv는 환경변수에서 설정을 로드합니다 (단일 계정)
func LoadFromEnv() (Config, error) {
	userID := os.Getenv("DH_LOTTERY_ID")
	password := os.Getenv("DH_LOTTERY_PW")

	if userID == "" || password == "" {
		return Config{}, fmt.Errorf("환경변수가 설정되지 않았습니다 (DH_LOTTERY_ID, DH_LOTTERY_PW)")
	}

	gameCount := 5
	if raw := os.Getenv("LOTTO_BUY_COUNT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("LOTTO_BUY_COUNT 값이 숫자가 아닙니다: %q", raw)
		}
		gameCount = parsed
	}

	return Config{
		Accounts: []Account{
			{UserID: userID, Password: password},
		},
		GameCount:        gameCount,
		GenType:          os.Getenv("LOTTO_GEN_TYPE"),
		AutoGenCode:      os.Getenv("LOTTO_AUTO_GEN_CODE"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		StorePath:        os.Getenv("STORE_PATH"),
		BuySchedule:      os.Getenv("JOB_SCHEDULE"),
		WinnerSchedule:   os.Getenv("WINNER_SCHEDULE"),
		BalanceSchedule:  os.Getenv("BALANCE_SCHEDULE"),
	}, nil
}

// LoadFromFile은 파일에서 설정을 로드합니다
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	if len(config.Accounts) == 0 {
		return Config{}, fmt.Errorf("설정 파일에 계정 정보가 없습니다")
	}

	return config, nil
}

// LoadInteractive는 사용자 입력으로 설정을 로드합니다 (단일 계정)
func LoadInteractive() (Config, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("동행복권 아이디: ")
	userID, _ := reader.ReadString('\n')
	userID = strings.TrimSpace(userID)

	fmt.Print("비밀번호: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	if userID == "" || password == "" {
		return Config{}, fmt.Errorf("아이디와 비밀번호를 모두 입력해주세요")
	}

	return Config{
		Accounts: []Account{
			{UserID: userID, Password: password},
		},
	}, nil
}

func (c *Config) applyDefaults() {
	if c.GameCount == 0 {
		c.GameCount = 5
	}
	if c.GenType == "" {
		c.GenType = "auto"
	}
	if c.StorePath == "" {
		c.StorePath = "logs/store.db"
	}
	if c.BuySchedule == "" {
		c.BuySchedule = DefaultBuySchedule
	}
	if c.WinnerSchedule == "" {
		c.WinnerSchedule = DefaultWinnerSchedule
	}
	if c.BalanceSchedule == "" {
		c.BalanceSchedule = DefaultBalanceSchedule
	}
}

// Print는 설정 정보를 출력합니다 (보안상 비밀번호는 마스킹)
func (c *Config) Print() {
	log.Println("=== 설정 정보 ===")
	log.Printf("등록된 계정 수: %d\n", len(c.Accounts))

	for i, account := range c.Accounts {
		maskedPw := strings.Repeat("*", len(account.Password))
		log.Printf("  [계정 %d] %s / %s\n", i+1, account.UserID, maskedPw)
	}

	log.Printf("  구매 게임 수: %d게임 / 선택 방식: %s\n", c.GameCount, c.GenType)

	if c.TelegramBotToken != "" && c.TelegramChatID != "" {
		log.Println("  텔레그램 알림: 활성화")
	} else {
		log.Println("  텔레그램 알림: 비활성화")
	}
}
