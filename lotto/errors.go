package lotto

import (
	"errors"
	"fmt"
)

// 사이트가 시스템 점검 페이지로 리다이렉트할 때 반환합니다
var ErrMaintenance = errors.New("동행복권 사이트가 현재 시스템 점검중입니다")

// TransportError는 네트워크 오류/타임아웃입니다.
// 서버가 진단 텍스트를 내려준 경우 Body에 디코딩된 본문을 담습니다.
type TransportError struct {
	URL  string
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("요청 실패 (%s): %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CipherInitError는 RSA 공개키 수신/파싱 실패입니다. 재시도하지 않습니다.
type CipherInitError struct {
	Err error
}

func (e *CipherInitError) Error() string {
	return fmt.Sprintf("RSA 공개키 초기화 실패: %v", e.Err)
}

func (e *CipherInitError) Unwrap() error { return e.Err }

// AuthError는 로그인 상태 기계가 실패 상태에 도달했음을 나타냅니다
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("로그인 실패: %s", e.Reason)
}

// InvalidRangeError는 당첨 결과 조회 범위가 잘못되었음을 나타냅니다.
// 네트워크 호출 전에 검증하여 반환합니다.
type InvalidRangeError struct {
	Start, End int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("잘못된 회차 범위: %d~%d (최대 %d회차까지 조회 가능)", e.Start, e.End, maxResultRange)
}

// ParseError는 예상하지 못한 HTML/JSON 구조를 나타냅니다
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 파싱 실패: %v", e.What, e.Err)
	}
	return fmt.Sprintf("%s 파싱 실패", e.What)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RejectReason은 구매 거절 사유의 분류입니다
type RejectReason int

const (
	// 로그인 세션 만료 (loginYn == "N")
	RejectAuthExpired RejectReason = iota
	// 허용되지 않은 접근 (isAllowed == "N")
	RejectBlocked
	// 게임 관리 상태 (isGameManaged == "Y")
	RejectGameManaged
	// 판매 시간 외 (checkOltSaleTime == false)
	RejectOutsideSaleWindow
	// 업무 결과 코드가 성공이 아님
	RejectBusinessCode
)

// rejectLabels는 거절 사유의 표시용 문구 매핑입니다
var rejectLabels = map[RejectReason]string{
	RejectAuthExpired:       "로그인 세션이 만료되었습니다",
	RejectBlocked:           "허용되지 않은 접근입니다",
	RejectGameManaged:       "게임이 관리 상태입니다",
	RejectOutsideSaleWindow: "현재 판매 시간이 아닙니다",
	RejectBusinessCode:      "구매가 거절되었습니다",
}

// PurchaseRejected는 구매 요청이 서버에서 거절되었음을 나타냅니다
type PurchaseRejected struct {
	Reason  RejectReason
	Message string // 서버가 내려준 사유 텍스트 (없을 수 있음)
}

func (e *PurchaseRejected) Error() string {
	label := rejectLabels[e.Reason]
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", label, e.Message)
	}
	return label
}
