package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DH_LOTTERY_ID", "DH_LOTTERY_PW", "LOTTO_BUY_COUNT",
		"LOTTO_GEN_TYPE", "LOTTO_AUTO_GEN_CODE",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"STORE_PATH", "JOB_SCHEDULE", "WINNER_SCHEDULE", "BALANCE_SCHEDULE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DH_LOTTERY_ID", "tester")
	t.Setenv("DH_LOTTERY_PW", "pw1234")
	t.Setenv("LOTTO_BUY_COUNT", "3")
	t.Setenv("LOTTO_GEN_TYPE", "manual")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	config, err := LoadFromEnv()
	require.NoError(t, err)
	require.Len(t, config.Accounts, 1)
	require.Equal(t, "tester", config.Accounts[0].UserID)
	require.Equal(t, "pw1234", config.Accounts[0].Password)
	require.Equal(t, 3, config.GameCount)
	require.Equal(t, "manual", config.GenType)
	require.Equal(t, "token", config.TelegramBotToken)
}

func TestLoadFromEnvMissingCredentials(t *testing.T) {
	clearEnv(t)
	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnvBadGameCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("DH_LOTTERY_ID", "tester")
	t.Setenv("DH_LOTTERY_PW", "pw1234")
	t.Setenv("LOTTO_BUY_COUNT", "다섯")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnvDefaultGameCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("DH_LOTTERY_ID", "tester")
	t.Setenv("DH_LOTTERY_PW", "pw1234")

	config, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, 5, config.GameCount)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"accounts": [
			{"userId": "tester1", "password": "pw1"},
			{"userId": "tester2", "password": "pw2"}
		],
		"gameCount": 2,
		"genType": "semiauto",
		"autoGenCode": "3"
	}`), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, config.Accounts, 2)
	require.Equal(t, "tester2", config.Accounts[1].UserID)
	require.Equal(t, 2, config.GameCount)
	require.Equal(t, "semiauto", config.GenType)
	require.Equal(t, "3", config.AutoGenCode)
}

func TestLoadFromFileNoAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gameCount": 2}`), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	config := Config{
		Accounts: []Account{{UserID: "tester", Password: "pw"}},
	}
	config.applyDefaults()

	require.Equal(t, 5, config.GameCount)
	require.Equal(t, "auto", config.GenType)
	require.Equal(t, "logs/store.db", config.StorePath)
	require.Equal(t, DefaultBuySchedule, config.BuySchedule)
	require.Equal(t, DefaultWinnerSchedule, config.WinnerSchedule)
	require.Equal(t, DefaultBalanceSchedule, config.BalanceSchedule)
}

func TestValidation(t *testing.T) {
	valid := Config{
		Accounts:  []Account{{UserID: "tester", Password: "pw"}},
		GameCount: 5,
		GenType:   "auto",
	}
	require.NoError(t, validate.Struct(valid))

	// 게임 수 범위 초과
	tooMany := valid
	tooMany.GameCount = 6
	require.Error(t, validate.Struct(tooMany))

	// 빈 비밀번호
	noPw := valid
	noPw.Accounts = []Account{{UserID: "tester"}}
	require.Error(t, validate.Struct(noPw))

	// 알 수 없는 선택 방식
	badGenType := valid
	badGenType.GenType = "random"
	require.Error(t, validate.Struct(badGenType))

	// 허용되지 않은 자동 코드
	badAutoCode := valid
	badAutoCode.AutoGenCode = "7"
	require.Error(t, validate.Struct(badAutoCode))
}
