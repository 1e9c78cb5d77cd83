package lotto

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
)

const rsaModulusURL = "https://www.dhlottery.co.kr/login/selectRsaModulus.do"

// fetchKeyMaterial은 로그인 암호화용 RSA 공개키 재료를 받아옵니다.
// 로그인 시도마다 새로 호출하며 캐시하지 않습니다.
func fetchKeyMaterial(session *Session, rawURL string) (*KeyMaterial, error) {
	resp, err := session.Get(rawURL)
	if err != nil {
		return nil, &CipherInitError{Err: err}
	}

	var payload struct {
		Data struct {
			RsaModulus     string `json:"rsaModulus"`
			PublicExponent string `json:"publicExponent"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &payload); err != nil {
		return nil, &CipherInitError{Err: err}
	}
	if payload.Data.RsaModulus == "" || payload.Data.PublicExponent == "" {
		return nil, &CipherInitError{Err: fmt.Errorf("응답에 공개키 재료가 없습니다")}
	}

	return &KeyMaterial{
		Modulus:        payload.Data.RsaModulus,
		PublicExponent: payload.Data.PublicExponent,
	}, nil
}

// encryptCredential은 평문을 RSA PKCS#1 v1.5로 암호화해 16진수 문자열로 반환합니다
func encryptCredential(key *KeyMaterial, plaintext string) (string, error) {
	modulus, ok := new(big.Int).SetString(key.Modulus, 16)
	if !ok {
		return "", &CipherInitError{Err: fmt.Errorf("잘못된 modulus: %q", key.Modulus)}
	}
	exponent, ok := new(big.Int).SetString(key.PublicExponent, 16)
	if !ok {
		return "", &CipherInitError{Err: fmt.Errorf("잘못된 exponent: %q", key.PublicExponent)}
	}

	pubKey := &rsa.PublicKey{
		N: modulus,
		E: int(exponent.Int64()),
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pubKey, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("RSA 암호화 실패: %w", err)
	}

	return hex.EncodeToString(ciphertext), nil
}
