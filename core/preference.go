package core

import (
	"encoding/json"
	"fmt"
)

// Preference 是一次两两比较的结果，取值只能是 AlphaWins / BetaWins / Abstain。
type Preference int8

const (
	Abstain   Preference = 0  // 弃权：不产生方向信号
	AlphaWins Preference = 1  // alpha 胜出
	BetaWins  Preference = -1 // beta 胜出
)

// ParsePreference 把原始数值转换为 Preference，{-1, 0, 1} 之外的值返回 InvalidParameter。
func ParsePreference(v int) (Preference, error) {
	if v < -1 || v > 1 {
		return Abstain, NewInvalidParameter(fmt.Sprintf("preference %d not in {-1, 0, 1}", v))
	}
	return Preference(v), nil
}

// Valid 报告 p 是否为合法取值。
func (p Preference) Valid() bool {
	return p == Abstain || p == AlphaWins || p == BetaWins
}

func (p Preference) String() string {
	switch p {
	case AlphaWins:
		return "alpha"
	case BetaWins:
		return "beta"
	case Abstain:
		return "abstain"
	default:
		return fmt.Sprintf("Preference(%d)", int8(p))
	}
}

func (p *Preference) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return NewDomainError(ModulePower, ErrorCodeInvalidParameter, "preference must be an integer").Wrap(err)
	}
	parsed, err := ParsePreference(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Comparison 是一条原始两两比较记录。
type Comparison struct {
	AlphaID    string     `json:"alphaId"`
	BetaID     string     `json:"betaId"`
	Preference Preference `json:"preference"`
}

// Outcome 返回 (winner, loser, ok)。弃权、缺失 ID 或自比较时 ok 为 false。
func (c Comparison) Outcome() (winner, loser string, ok bool) {
	if c.AlphaID == "" || c.BetaID == "" || c.AlphaID == c.BetaID {
		return "", "", false
	}
	switch c.Preference {
	case AlphaWins:
		return c.AlphaID, c.BetaID, true
	case BetaWins:
		return c.BetaID, c.AlphaID, true
	default:
		return "", "", false
	}
}

// Ballot 是一个投票者的一次提交，包含若干两两比较。
type Ballot struct {
	ID          string       `json:"id"`
	Voter       string       `json:"voter,omitempty"`
	Preferences []Comparison `json:"preferences"`
}

// Validate 检查 ballot 的结构合法性；投票资格、一人一票等规则由上游负责。
func (b Ballot) Validate() error {
	if b.ID == "" {
		return NewDomainError(ModuleStore, ErrorCodeInvalidInput, "ballot id is required")
	}
	for i, c := range b.Preferences {
		if !c.Preference.Valid() {
			return NewInvalidParameter(fmt.Sprintf("ballot %s preference #%d: %s", b.ID, i, c.Preference))
		}
	}
	return nil
}

// FlattenBallots 按 ballots 顺序展开所有比较记录。
func FlattenBallots(ballots []Ballot) []Comparison {
	n := 0
	for _, b := range ballots {
		n += len(b.Preferences)
	}
	out := make([]Comparison, 0, n)
	for _, b := range ballots {
		out = append(out, b.Preferences...)
	}
	return out
}
