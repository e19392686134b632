package model

import (
	"errors"
	"fmt"
)

// Condition はバックエンドが宣言する業務エラー条件の名前。
// トランスポート障害とは区別され、各ルートが固定のHTTPステータスへ変換する。
type Condition string

// バックエンド各サービスが宣言する条件
const (
	ConditionNotFound              Condition = "not_found"
	ConditionNotAuthorized         Condition = "not_authorized"
	ConditionAlreadyExists         Condition = "already_exists"
	ConditionInvalidAttributes     Condition = "invalid_attributes"
	ConditionUsernameAlreadyExists Condition = "username_already_exists"
	ConditionInvalidCredentials    Condition = "invalid_credentials"

	// 一覧取得のフィルタが存在しないエンティティを参照した場合の条件。
	// 「結果0件」とは区別される。
	ConditionAccountNotFound Condition = "account_not_found"
	ConditionPostNotFound    Condition = "post_not_found"
)

// BackendError はバックエンドが返した宣言済みエラー条件を表す。
// 接続障害やタイムアウトはBackendErrorにならず、通常のerrorとして伝播する。
type BackendError struct {
	Function  string    // 呼び出したリモート操作名
	Condition Condition // バックエンドが宣言した条件名
}

// Error はerrorインターフェースを実装する。
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend: %s returned condition %q", e.Function, e.Condition)
}

// IsCondition はerrが指定した宣言済み条件のBackendErrorかどうかを判定する。
func IsCondition(err error, c Condition) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Condition == c
}

// ConditionOf はerrからバックエンド条件を取り出す。
// BackendErrorでない場合は2番目の戻り値がfalseになる。
func ConditionOf(err error) (Condition, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Condition, true
	}
	return "", false
}
