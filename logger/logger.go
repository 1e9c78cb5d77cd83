package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var logFile *os.File

// Init는 로거를 초기화하고 날짜별 로그 파일을 생성합니다.
// 로그는 콘솔과 파일 양쪽에 출력됩니다.
func Init() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	// 로그 파일명: logs/dhlotto_2026-08-28.log
	logFileName := fmt.Sprintf("dhlotto_%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(logsDir, logFileName)

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("로그 파일 생성 실패: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetFlags(log.Ldate | log.Ltime)

	log.Printf("✅ 로그 파일 초기화 완료: %s\n", logFilePath)
	return nil
}

// Close는 로그 파일을 닫습니다
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}
