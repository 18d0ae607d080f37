package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/tranvictor/repscan/rewards"
)

type rewardRequest struct {
	Address string `json:"address"`
	Amount  amount `json:"amount"`
}

// amount accepts both 12.5 and "12.5".
type amount string

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = amount(n.String())
	return nil
}

type rewardResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
}

type badgeRequest struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	IPFSCid string `json:"ipfsCid"`
}

type badgeMintResponse struct {
	Success    bool   `json:"success"`
	BurnTxHash string `json:"burnTxHash"`
	MintTxHash string `json:"mintTxHash"`
	TokenID    string `json:"tokenId"`
	OpenSeaURL string `json:"openSeaUrl"`
}

type badgeStatusResponse struct {
	Success  bool    `json:"success"`
	HasBadge bool    `json:"hasBadge"`
	TokenID  *string `json:"tokenId"`
}

type rewardErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) writeRewardError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, rewards.ErrInvalidRequest) {
		status = http.StatusBadRequest
	} else {
		s.requestLogger(r.Context()).Error("rewards request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, rewardErrorResponse{Error: err.Error()})
}

func (s *Server) handleReward(w http.ResponseWriter, r *http.Request) {
	req := rewardRequest{}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, rewardErrorResponse{Error: msgInvalidBody})
		return
	}
	hash, err := s.rewarder.Reward(r.Context(), req.Address, string(req.Amount))
	if err != nil {
		s.writeRewardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewardResponse{Success: true, TxHash: hash})
}

func (s *Server) handleMintBadge(w http.ResponseWriter, r *http.Request) {
	req := badgeRequest{}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, rewardErrorResponse{Error: msgInvalidBody})
		return
	}
	mint, err := s.rewarder.MintBadge(r.Context(), rewards.BadgeRequest{
		Address: req.Address,
		Role:    req.Role,
		IPFSCid: req.IPFSCid,
	})
	if err != nil {
		s.writeRewardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeMintResponse{
		Success:    true,
		BurnTxHash: mint.BurnTxHash,
		MintTxHash: mint.MintTxHash,
		TokenID:    mint.TokenID,
		OpenSeaURL: mint.OpenSeaURL,
	})
}

func (s *Server) handleCheckBadge(w http.ResponseWriter, r *http.Request) {
	status, err := s.rewarder.CheckBadge(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		s.writeRewardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeStatusResponse{
		Success:  true,
		HasBadge: status.HasBadge,
		TokenID:  status.TokenID,
	})
}
