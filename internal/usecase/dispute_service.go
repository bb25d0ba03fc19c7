package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// DisputeService runs the dispute lifecycle: opening a case when a captain
// rejects a score, collecting one vote per match participant and resolving
// on a quorum-gated majority with trust-ledger side effects.
type DisputeService struct {
	disputeRepo dispute.Repository
	matchRepo   match.Repository
	teamRepo    team.Repository
	trust       *TrustService
	idGen       id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewDisputeService(
	disputeRepo dispute.Repository,
	matchRepo match.Repository,
	teamRepo team.Repository,
	trustService *TrustService,
	idGen id.Generator,
	logger *logging.Logger,
) *DisputeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DisputeService{
		disputeRepo: disputeRepo,
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		trust:       trustService,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// DisputeView is the dispute together with its live vote tally.
type DisputeView struct {
	Dispute       dispute.Dispute
	Votes         []dispute.Vote
	RequiredVotes int
}

type OpenDisputeInput struct {
	MatchID         string
	DisputingTeamID string
	Reason          string
}

// OpenDispute creates the dispute case and moves the match to disputed.
// Only one open dispute per match is permitted; the uniqueness is enforced
// at the store so two near-simultaneous rejections cannot both land.
func (s *DisputeService) OpenDispute(ctx context.Context, input OpenDisputeInput) (DisputeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisputeService.OpenDispute")
	defer span.End()

	current, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return DisputeView{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return DisputeView{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}

	defendingTeamID := current.OpposingTeam(input.DisputingTeamID)
	if defendingTeamID == "" {
		return DisputeView{}, fmt.Errorf("%w: match=%s team=%s", ErrTeamNotInMatch, current.ID, input.DisputingTeamID)
	}

	disputeID, err := s.idGen.NewID()
	if err != nil {
		return DisputeView{}, fmt.Errorf("generate dispute id: %w", err)
	}

	created, err := s.disputeRepo.Create(ctx, dispute.Dispute{
		ID:              disputeID,
		MatchID:         current.ID,
		DisputingTeamID: input.DisputingTeamID,
		DefendingTeamID: defendingTeamID,
		Reason:          strings.TrimSpace(input.Reason),
		Status:          dispute.StatusOpen,
		CreatedAt:       s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, dispute.ErrOpenDisputeExists) {
			return DisputeView{}, fmt.Errorf("%w: match=%s", ErrDisputeAlreadyOpen, current.ID)
		}
		return DisputeView{}, fmt.Errorf("create dispute: %w", err)
	}

	if _, err := s.matchRepo.SetStatus(ctx, current.ID, match.StatusDisputed); err != nil {
		return DisputeView{}, fmt.Errorf("mark match disputed: %w", err)
	}

	s.logger.InfoContext(ctx, "dispute opened",
		"dispute_id", created.ID,
		"match_id", current.ID,
		"disputing_team_id", created.DisputingTeamID,
		"defending_team_id", created.DefendingTeamID,
	)

	required, err := s.requiredVotes(ctx, current.ID)
	if err != nil {
		return DisputeView{}, err
	}

	return DisputeView{Dispute: created, RequiredVotes: required}, nil
}

func (s *DisputeService) GetDispute(ctx context.Context, disputeID string) (DisputeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisputeService.GetDispute")
	defer span.End()

	disputeID = strings.TrimSpace(disputeID)
	if disputeID == "" {
		return DisputeView{}, fmt.Errorf("%w: dispute id is required", ErrInvalidInput)
	}

	found, exists, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return DisputeView{}, fmt.Errorf("get dispute: %w", err)
	}
	if !exists {
		return DisputeView{}, fmt.Errorf("%w: dispute=%s", ErrNotFound, disputeID)
	}

	votes, err := s.disputeRepo.ListVotes(ctx, found.ID)
	if err != nil {
		return DisputeView{}, fmt.Errorf("list dispute votes: %w", err)
	}

	required, err := s.requiredVotes(ctx, found.MatchID)
	if err != nil {
		return DisputeView{}, err
	}

	return DisputeView{Dispute: found, Votes: votes, RequiredVotes: required}, nil
}

func (s *DisputeService) ListOpenDisputes(ctx context.Context) ([]dispute.Dispute, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisputeService.ListOpenDisputes")
	defer span.End()

	open, err := s.disputeRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open disputes: %w", err)
	}

	return open, nil
}

type CastVoteInput struct {
	DisputeID     string
	PlayerID      string
	VoteForTeamID string
}

// CastVote records one participant's vote and immediately evaluates whether
// the dispute can be resolved. Voting and resolution are a single logical
// operation; the caller never triggers resolution separately.
func (s *DisputeService) CastVote(ctx context.Context, input CastVoteInput) (dispute.Vote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisputeService.CastVote")
	defer span.End()

	current, exists, err := s.disputeRepo.GetByID(ctx, input.DisputeID)
	if err != nil {
		return dispute.Vote{}, fmt.Errorf("get dispute: %w", err)
	}
	if !exists {
		return dispute.Vote{}, fmt.Errorf("%w: dispute=%s", ErrNotFound, input.DisputeID)
	}
	if !current.IsOpen() {
		return dispute.Vote{}, fmt.Errorf("%w: dispute=%s", ErrDisputeResolved, current.ID)
	}

	disputedMatch, exists, err := s.matchRepo.GetByID(ctx, current.MatchID)
	if err != nil {
		return dispute.Vote{}, fmt.Errorf("get disputed match: %w", err)
	}
	if !exists {
		return dispute.Vote{}, fmt.Errorf("%w: match=%s", ErrNotFound, current.MatchID)
	}
	if !disputedMatch.HasTeam(input.VoteForTeamID) {
		return dispute.Vote{}, fmt.Errorf("%w: match=%s team=%s", ErrTeamNotInMatch, disputedMatch.ID, input.VoteForTeamID)
	}

	participants, err := s.matchRepo.ListParticipants(ctx, current.MatchID)
	if err != nil {
		return dispute.Vote{}, fmt.Errorf("list match participants: %w", err)
	}
	if !isParticipant(participants, input.PlayerID) {
		return dispute.Vote{}, fmt.Errorf("%w: dispute=%s player=%s", ErrPlayerNotEligible, current.ID, input.PlayerID)
	}

	voteID, err := s.idGen.NewID()
	if err != nil {
		return dispute.Vote{}, fmt.Errorf("generate vote id: %w", err)
	}

	vote, err := s.disputeRepo.InsertVote(ctx, dispute.Vote{
		ID:            voteID,
		DisputeID:     current.ID,
		VoterID:       input.PlayerID,
		VoteForTeamID: input.VoteForTeamID,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, dispute.ErrVoteExists) {
			return dispute.Vote{}, fmt.Errorf("%w: dispute=%s player=%s", ErrDuplicateVote, current.ID, input.PlayerID)
		}
		return dispute.Vote{}, fmt.Errorf("insert dispute vote: %w", err)
	}

	s.logger.InfoContext(ctx, "dispute vote cast",
		"dispute_id", current.ID,
		"player_id", input.PlayerID,
		"vote_for_team_id", input.VoteForTeamID,
	)

	if err := s.evaluateResolution(ctx, current, disputedMatch, len(participants)); err != nil {
		return vote, err
	}

	return vote, nil
}

// evaluateResolution tallies the votes and, once a strict majority of all
// eligible participants backs one side, resolves the dispute. The resolve
// itself is a conditional open->resolved flip at the store, so two votes
// reaching quorum concurrently produce exactly one resolution; the loser
// observes won=false and backs off.
func (s *DisputeService) evaluateResolution(ctx context.Context, d dispute.Dispute, disputedMatch match.Match, totalParticipants int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisputeService.evaluateResolution")
	defer span.End()

	votes, err := s.disputeRepo.ListVotes(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("list dispute votes: %w", err)
	}

	required := quorum(totalParticipants)
	if len(votes) < required {
		return nil
	}

	var forDisputing, forDefending int
	for _, vote := range votes {
		switch vote.VoteForTeamID {
		case d.DisputingTeamID:
			forDisputing++
		case d.DefendingTeamID:
			forDefending++
		}
	}

	// Ties favour the defending side: a dispute should not prevail without
	// a strict majority behind it.
	winningTeamID := d.DefendingTeamID
	if forDisputing > forDefending {
		winningTeamID = d.DisputingTeamID
	}

	resolvedAt := s.now().UTC()
	won, err := s.disputeRepo.Resolve(ctx, d.ID, winningTeamID, resolvedAt)
	if err != nil {
		return fmt.Errorf("resolve dispute: %w", err)
	}
	if !won {
		return nil
	}

	s.logger.InfoContext(ctx, "dispute resolved",
		"dispute_id", d.ID,
		"match_id", d.MatchID,
		"winning_team_id", winningTeamID,
		"votes_for_disputing", forDisputing,
		"votes_for_defending", forDefending,
	)

	if winningTeamID == d.DefendingTeamID {
		if _, err := s.matchRepo.CompleteFromDispute(ctx, d.MatchID, resolvedAt); err != nil {
			return fmt.Errorf("complete match after dispute: %w", err)
		}
	} else {
		// The contested score is thrown out; the match waits for a fresh
		// submission before the approval cycle can restart.
		if _, err := s.matchRepo.InvalidateScore(ctx, d.MatchID, resolvedAt); err != nil {
			return fmt.Errorf("invalidate match score after dispute: %w", err)
		}
	}

	// Ledger postings happen after the status transition has committed.
	// A posting failure surfaces to the caller but the dispute stays
	// resolved; the ledger is advisory accounting, not a balance the
	// resolution depends on.
	if err := s.postResolutionTrust(ctx, d, winningTeamID); err != nil {
		return err
	}

	return nil
}

func (s *DisputeService) postResolutionTrust(ctx context.Context, d dispute.Dispute, winningTeamID string) error {
	losingTeamID := d.DisputingTeamID
	if winningTeamID == d.DisputingTeamID {
		losingTeamID = d.DefendingTeamID
	}

	winners, err := s.teamRepo.ListMembers(ctx, winningTeamID)
	if err != nil {
		return fmt.Errorf("list winning team members: %w", err)
	}
	for _, member := range winners {
		_, err := s.trust.RecordTransaction(ctx, RecordTransactionInput{
			PlayerID:  member.UserID,
			Points:    trust.PointsDisputeWon,
			Reason:    "Dispute resolution won",
			MatchID:   d.MatchID,
			DisputeID: d.ID,
		})
		if err != nil {
			return fmt.Errorf("post dispute award: %w", err)
		}
	}

	// A defending side that loses already pays by the score being thrown
	// out; only a failed dispute draws a penalty.
	if losingTeamID != d.DisputingTeamID {
		return nil
	}

	losers, err := s.teamRepo.ListMembers(ctx, losingTeamID)
	if err != nil {
		return fmt.Errorf("list losing team members: %w", err)
	}
	for _, member := range losers {
		_, err := s.trust.RecordTransaction(ctx, RecordTransactionInput{
			PlayerID:  member.UserID,
			Points:    trust.PointsFalseDispute,
			Reason:    "False dispute claim",
			MatchID:   d.MatchID,
			DisputeID: d.ID,
		})
		if err != nil {
			return fmt.Errorf("post dispute penalty: %w", err)
		}
	}

	return nil
}

func (s *DisputeService) requiredVotes(ctx context.Context, matchID string) (int, error) {
	participants, err := s.matchRepo.ListParticipants(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("list match participants: %w", err)
	}

	return quorum(len(participants)), nil
}

// quorum is a strict majority of all eligible voters: ceil(total / 2).
func quorum(totalParticipants int) int {
	return (totalParticipants + 1) / 2
}

func isParticipant(participants []match.Participation, playerID string) bool {
	for _, p := range participants {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}
