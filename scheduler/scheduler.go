package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler는 구매/당첨확인 사이클을 시간 기준으로 실행하는 크론 래퍼입니다.
// 등록된 작업끼리는 겹쳐 실행되지 않도록 직렬화합니다. 세션은 동시 사용을
// 허용하지 않기 때문입니다.
type Scheduler struct {
	cron *cron.Cron
}

// New는 한국 시간대로 동작하는 스케줄러를 생성합니다
func New() *Scheduler {
	location, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Printf("⚠️  시간대 로드 실패, UTC 사용: %v\n", err)
		location = time.UTC
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
	}
}

// AddFunc는 크론 작업을 추가합니다
func (s *Scheduler) AddFunc(spec string, cmd func()) error {
	_, err := s.cron.AddFunc(spec, cmd)
	return err
}

// Start는 스케줄러를 시작합니다
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop은 스케줄러를 중지합니다
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
