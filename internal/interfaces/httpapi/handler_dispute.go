package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

func (h *Handler) ListOpenDisputes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpenDisputes")
	defer span.End()

	disputes, err := h.disputeService.ListOpenDisputes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list open disputes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]disputeDTO, 0, len(disputes))
	for _, d := range disputes {
		items = append(items, disputeToDTO(d, nil, 0))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDispute")
	defer span.End()

	disputeID := strings.TrimSpace(r.PathValue("disputeID"))
	view, err := h.disputeService.GetDispute(ctx, disputeID)
	if err != nil {
		h.logger.WarnContext(ctx, "get dispute failed", "dispute_id", disputeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, disputeViewToDTO(view))
}

// CastVote records the authenticated participant's voice on a dispute and
// reports whether the vote resolved it.
func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req castVoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	disputeID := strings.TrimSpace(r.PathValue("disputeID"))
	vote, err := h.disputeService.CastVote(ctx, usecase.CastVoteInput{
		DisputeID:     disputeID,
		PlayerID:      u.ID,
		VoteForTeamID: req.VoteForTeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "cast vote failed", "dispute_id", disputeID, "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// Resolution may have completed the match and shifted trust balances.
	h.leaderboardService.InvalidateBoards(ctx)

	view, err := h.disputeService.GetDispute(ctx, disputeID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, castVoteResponse{
		Vote:    voteToDTO(vote),
		Dispute: disputeViewToDTO(view),
	})
}

type castVoteRequest struct {
	VoteForTeamID string `json:"voteForTeamId" validate:"required"`
}

type castVoteResponse struct {
	Vote    voteDTO    `json:"vote"`
	Dispute disputeDTO `json:"dispute"`
}

type disputeDTO struct {
	ID              string     `json:"id"`
	MatchID         string     `json:"matchId"`
	DisputingTeamID string     `json:"disputingTeamId"`
	DefendingTeamID string     `json:"defendingTeamId"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	WinningTeamID   string     `json:"winningTeamId,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	RequiredVotes   int        `json:"requiredVotes,omitempty"`
	Votes           []voteDTO  `json:"votes,omitempty"`
}

type voteDTO struct {
	ID            string    `json:"id"`
	DisputeID     string    `json:"disputeId"`
	VoterID       string    `json:"voterId"`
	VoteForTeamID string    `json:"voteForTeamId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func disputeToDTO(v dispute.Dispute, votes []dispute.Vote, requiredVotes int) disputeDTO {
	dto := disputeDTO{
		ID:              v.ID,
		MatchID:         v.MatchID,
		DisputingTeamID: v.DisputingTeamID,
		DefendingTeamID: v.DefendingTeamID,
		Reason:          v.Reason,
		Status:          v.Status,
		WinningTeamID:   v.WinningTeamID,
		ResolvedAt:      v.ResolvedAt,
		CreatedAt:       v.CreatedAt,
		RequiredVotes:   requiredVotes,
	}
	for _, vote := range votes {
		dto.Votes = append(dto.Votes, voteToDTO(vote))
	}

	return dto
}

func disputeViewToDTO(view usecase.DisputeView) disputeDTO {
	return disputeToDTO(view.Dispute, view.Votes, view.RequiredVotes)
}

func voteToDTO(v dispute.Vote) voteDTO {
	return voteDTO{
		ID:            v.ID,
		DisputeID:     v.DisputeID,
		VoterID:       v.VoterID,
		VoteForTeamID: v.VoteForTeamID,
		CreatedAt:     v.CreatedAt,
	}
}
