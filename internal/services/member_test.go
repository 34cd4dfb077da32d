package services

import (
	"testing"

	"github.com/yzhyun/askmate/internal/models"
)

func TestAddMemberDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	if _, err := svc.AddMember("Alice"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if _, err := svc.AddMember("Alice"); err == nil || err.Error() != "member already exists" {
		t.Errorf("duplicate AddMember err = %v, want the friendly message", err)
	}
}

func TestDeactivateMemberKeepsRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	member, _ := svc.AddMember("Alice")
	if err := svc.DeactivateMember(member.ID); err != nil {
		t.Fatalf("DeactivateMember: %v", err)
	}

	active, err := svc.ListActiveMembers()
	if err != nil {
		t.Fatalf("ListActiveMembers: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active members = %d after deactivation, want 0", len(active))
	}

	var n int64
	db.Model(&models.Member{}).Count(&n)
	if n != 1 {
		t.Errorf("member row deleted; soft delete expected")
	}

	if err := svc.DeactivateMember(999); err == nil {
		t.Error("expected error deactivating an unknown member")
	}
}

func TestHasMemberAskedQuestion(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db)
	questions := NewQuestionService(db, rounds)
	members := NewMemberService(db)

	mustAddMember(t, db, "Alice")
	round, _ := rounds.CreateRound("round one", "")
	mustAddTarget(t, db, "Bob", round.ID)

	asked, err := members.HasMemberAskedQuestion("Alice")
	if err != nil {
		t.Fatalf("HasMemberAskedQuestion: %v", err)
	}
	if asked {
		t.Error("member reported as asked before any question")
	}

	questions.SaveQuestion("Alice", "Bob", "first question")
	asked, _ = members.HasMemberAskedQuestion("Alice")
	if !asked {
		t.Error("member not reported as asked after submitting")
	}
}

func TestTargetLifecycle(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db)
	targets := NewTargetService(db, rounds)

	if _, err := targets.AddTarget("Bob"); err != ErrNoActiveRound {
		t.Fatalf("AddTarget without round err = %v, want ErrNoActiveRound", err)
	}

	rounds.CreateRound("round one", "")
	target, err := targets.AddTarget("Bob")
	if err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	if _, err := targets.AddTarget("Bob"); err == nil {
		t.Error("duplicate target in the same round accepted")
	}

	current, err := targets.ListCurrentActiveTargets()
	if err != nil {
		t.Fatalf("ListCurrentActiveTargets: %v", err)
	}
	if len(current) != 1 {
		t.Fatalf("current targets = %d, want 1", len(current))
	}

	if _, err := targets.DeactivateTarget(target.ID); err != nil {
		t.Fatalf("DeactivateTarget: %v", err)
	}
	current, _ = targets.ListCurrentActiveTargets()
	if len(current) != 0 {
		t.Errorf("current targets after deactivation = %d, want 0", len(current))
	}

	// The same name registers again in the next round as a fresh row.
	rounds.CreateRound("round two", "")
	if _, err := targets.AddTarget("Bob"); err != nil {
		t.Errorf("AddTarget in new round: %v", err)
	}
}

func TestMoveOrphanTargets(t *testing.T) {
	db := newTestDB(t)
	rounds := NewRoundService(db)
	targets := NewTargetService(db, rounds)

	db.Create(&models.Target{Name: "Loner", IsActive: true})
	round, _ := rounds.CreateRound("round one", "")

	moved, err := targets.MoveOrphanTargetsToActiveRound()
	if err != nil {
		t.Fatalf("MoveOrphanTargetsToActiveRound: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	var adopted models.Target
	db.Where("name = ?", "Loner").First(&adopted)
	if adopted.RoundID == nil || *adopted.RoundID != round.ID {
		t.Errorf("orphan not adopted into round %d: %v", round.ID, adopted.RoundID)
	}
}
