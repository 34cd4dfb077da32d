package services

import (
	"errors"
	"testing"

	"github.com/yzhyun/askmate/internal/models"
)

func TestNextRoundNumberEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)

	next, err := svc.NextRoundNumber()
	if err != nil {
		t.Fatalf("NextRoundNumber: %v", err)
	}
	if next != 1 {
		t.Errorf("next number with no rounds = %d, want 1", next)
	}
}

func TestCreateRoundActivatesAndNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)

	r1, err := svc.CreateRound("round one", "first session")
	if err != nil {
		t.Fatalf("create round 1: %v", err)
	}
	if r1.RoundNumber != 1 || !r1.IsActive {
		t.Fatalf("round 1 = number %d active %v, want 1/true", r1.RoundNumber, r1.IsActive)
	}

	r2, err := svc.CreateRound("round two", "")
	if err != nil {
		t.Fatalf("create round 2: %v", err)
	}
	if r2.RoundNumber != 2 || !r2.IsActive {
		t.Fatalf("round 2 = number %d active %v, want 2/true", r2.RoundNumber, r2.IsActive)
	}

	var reloaded models.Round
	if err := db.First(&reloaded, r1.ID).Error; err != nil {
		t.Fatalf("reload round 1: %v", err)
	}
	if reloaded.IsActive {
		t.Error("round 1 still active after round 2 was created")
	}

	var activeCount int64
	db.Model(&models.Round{}).Where("is_active = ?", true).Count(&activeCount)
	if activeCount != 1 {
		t.Errorf("active rounds = %d, want 1", activeCount)
	}
}

func TestGetCurrentActiveRoundNone(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)

	round, err := svc.GetCurrentActiveRound()
	if err != nil {
		t.Fatalf("GetCurrentActiveRound: %v", err)
	}
	if round != nil {
		t.Errorf("expected nil round, got %+v", round)
	}
}

func TestSwitchToRoundResetsTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)

	r1, _ := svc.CreateRound("round one", "")
	r2, _ := svc.CreateRound("round two", "")
	mustAddTarget(t, db, "Bob", r2.ID)
	mustAddTarget(t, db, "Carol", r2.ID)

	switched, err := svc.SwitchToRound(r1.ID)
	if err != nil {
		t.Fatalf("SwitchToRound: %v", err)
	}
	if switched.ID != r1.ID || !switched.IsActive {
		t.Fatalf("switched to %d active %v, want %d/true", switched.ID, switched.IsActive, r1.ID)
	}

	var r2Reloaded models.Round
	db.First(&r2Reloaded, r2.ID)
	if r2Reloaded.IsActive {
		t.Error("round 2 still active after switch")
	}

	var activeTargets int64
	db.Model(&models.Target{}).Where("is_active = ?", true).Count(&activeTargets)
	if activeTargets != 0 {
		t.Errorf("active targets after switch = %d, want 0", activeTargets)
	}
}

func TestSwitchToRoundUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)
	svc.CreateRound("round one", "")

	if _, err := svc.SwitchToRound(999); err == nil {
		t.Fatal("expected error switching to unknown round")
	}

	// The transaction must roll back: round one stays active.
	round, err := svc.GetCurrentActiveRound()
	if err != nil || round == nil {
		t.Fatalf("active round lost after failed switch: round=%v err=%v", round, err)
	}
}

func TestDeleteRoundScopesCascade(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db)
	questions := NewQuestionService(db, rounds)
	answers := NewAnswerService(db, rounds)

	mustAddMember(t, db, "Alice")

	r1, _ := rounds.CreateRound("round one", "")
	mustAddTarget(t, db, "Bob", r1.ID)
	q1, err := questions.SaveQuestion("Alice", "Bob", "first round question")
	if err != nil {
		t.Fatalf("save question in round 1: %v", err)
	}
	if _, err := answers.SaveAnswer(q1.ID, "Bob", "first round answer"); err != nil {
		t.Fatalf("save answer in round 1: %v", err)
	}

	r2, _ := rounds.CreateRound("round two", "")
	mustAddTarget(t, db, "Bob", r2.ID)
	q2, err := questions.SaveQuestion("Alice", "Bob", "second round question")
	if err != nil {
		t.Fatalf("save question in round 2: %v", err)
	}
	if _, err := answers.SaveAnswer(q2.ID, "Bob", "second round answer"); err != nil {
		t.Fatalf("save answer in round 2: %v", err)
	}

	if err := rounds.DeleteRound(r1.ID); err != nil {
		t.Fatalf("DeleteRound: %v", err)
	}

	countByRound := func(model interface{}, roundID uint) int64 {
		var n int64
		if err := db.Model(model).Where("round_id = ?", roundID).Count(&n).Error; err != nil {
			t.Fatalf("count rows for round %d: %v", roundID, err)
		}
		return n
	}

	if q, a, tr := countByRound(&models.Question{}, r1.ID), countByRound(&models.Answer{}, r1.ID), countByRound(&models.Target{}, r1.ID); q != 0 || a != 0 || tr != 0 {
		t.Errorf("round 1 leftovers: questions=%d answers=%d targets=%d", q, a, tr)
	}
	if q, a, tr := countByRound(&models.Question{}, r2.ID), countByRound(&models.Answer{}, r2.ID), countByRound(&models.Target{}, r2.ID); q != 1 || a != 1 || tr != 1 {
		t.Errorf("round 2 rows touched: questions=%d answers=%d targets=%d", q, a, tr)
	}
}

func TestFixRoundNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoundService(db)

	r1, _ := svc.CreateRound("one", "")
	r2, _ := svc.CreateRound("two", "")
	r3, _ := svc.CreateRound("three", "")

	// Scramble the numbers as a legacy deployment could have.
	db.Model(&models.Round{}).Where("id = ?", r1.ID).Update("round_number", 7)
	db.Model(&models.Round{}).Where("id = ?", r2.ID).Update("round_number", 9)
	db.Model(&models.Round{}).Where("id = ?", r3.ID).Update("round_number", 8)

	fixed, err := svc.FixRoundNumbers()
	if err != nil {
		t.Fatalf("FixRoundNumbers: %v", err)
	}
	if len(fixed) != 3 {
		t.Fatalf("fixed %d rounds, want 3", len(fixed))
	}
	for i, round := range fixed {
		if round.RoundNumber != i+1 {
			t.Errorf("round %d renumbered to %d, want %d", round.ID, round.RoundNumber, i+1)
		}
	}
}

func TestErrNoActiveRoundIsSentinel(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db)
	questions := NewQuestionService(db, rounds)

	_, err := questions.SaveQuestion("Alice", "Bob", "anyone there?")
	if !errors.Is(err, ErrNoActiveRound) {
		t.Fatalf("err = %v, want ErrNoActiveRound", err)
	}
}
