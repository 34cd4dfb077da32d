package handlers

import (
	"net/http"
	"testing"

	"github.com/yzhyun/askmate/internal/models"
)

func TestCreateRoundRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/rounds", CreateRoundRequest{Title: "round one"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without credentials = %d, want 401", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/v1/rounds", CreateRoundRequest{Title: "round one"}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status with credentials = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp RoundResponse
	decodeBody(t, w, &resp)
	if resp.Round == nil || resp.Round.RoundNumber != 1 || !resp.Round.IsActive {
		t.Errorf("created round = %+v, want number 1 and active", resp.Round)
	}
}

func TestCreateRoundValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/rounds", map[string]string{"description": "missing title"}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status without title = %d, want 400", w.Code)
	}
}

func TestGetCurrentRoundNullWhenNone(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/rounds/current", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RoundResponse
	decodeBody(t, w, &resp)
	if !resp.Success || resp.Round != nil {
		t.Errorf("resp = %+v, want success with a null round", resp)
	}
}

func TestSwitchRoundEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	r1 := env.seedRoundWithTarget(t)

	w := env.request(t, http.MethodPost, "/api/v1/rounds", CreateRoundRequest{Title: "round two"}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create round two: %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/v1/rounds/1/switch", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("switch status = %d: %s", w.Code, w.Body.String())
	}

	var resp RoundResponse
	decodeBody(t, w, &resp)
	if resp.Round == nil || resp.Round.ID != r1.ID || !resp.Round.IsActive {
		t.Errorf("switched round = %+v, want round %d active", resp.Round, r1.ID)
	}

	// The switch resets answerer registrations.
	var activeTargets int64
	env.db.Model(&models.Target{}).Where("is_active = ?", true).Count(&activeTargets)
	if activeTargets != 0 {
		t.Errorf("active targets after switch = %d, want 0", activeTargets)
	}

	w = env.request(t, http.MethodPost, "/api/v1/rounds/999/switch", nil, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("switch to unknown round = %d, want 404", w.Code)
	}
}

func TestDeleteRound(t *testing.T) {
	env := newTestEnv(t)
	round := env.seedRoundWithTarget(t)

	w := env.request(t, http.MethodDelete, "/api/v1/rounds/1", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", w.Code, w.Body.String())
	}

	var n int64
	env.db.Model(&models.Round{}).Where("id = ?", round.ID).Count(&n)
	if n != 0 {
		t.Error("round row survived deletion")
	}
}
