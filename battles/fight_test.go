package battles

import (
	"errors"
	"testing"
	"time"

	"robotserver/models"

	"gorm.io/gorm"
)

func TestFightCreatesBattleAndChallengers(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	strong := seedRobot(t, db, &owner, "Strong", 30, 20, 10)
	weak := seedRobot(t, db, &rival, "Weak", 1, 2, 3)

	battle, err := Fight(db, logger, limits, strong.ID, weak.ID, owner.ID, "Tokyo Dome")
	if err != nil {
		t.Fatalf("Fight returned error: %v", err)
	}
	if battle.Location != "Tokyo Dome" {
		t.Fatalf("battle location = %q, want Tokyo Dome", battle.Location)
	}
	if len(battle.Challengers) != 2 {
		t.Fatalf("challenger count = %d, want 2", len(battle.Challengers))
	}

	var initiators, winners int
	for _, challenger := range battle.Challengers {
		if challenger.IsInitiator {
			initiators++
			if challenger.RobotID != strong.ID {
				t.Fatalf("initiator robot = %d, want %d", challenger.RobotID, strong.ID)
			}
			if challenger.UserID != owner.ID {
				t.Fatalf("initiator user = %d, want %d", challenger.UserID, owner.ID)
			}
		}
		if challenger.IsVictorious {
			winners++
			if challenger.RobotID != strong.ID {
				t.Fatalf("winning robot = %d, want %d", challenger.RobotID, strong.ID)
			}
		}
	}
	if initiators != 1 {
		t.Fatalf("initiator count = %d, want 1", initiators)
	}
	if winners != 1 {
		t.Fatalf("winner count = %d, want 1", winners)
	}

	// DBにも保存されていること
	var stored int64
	if err := db.Model(&models.Challenger{}).Where("battle_id = ?", battle.ID).Count(&stored).Error; err != nil {
		t.Fatalf("failed to count challengers: %v", err)
	}
	if stored != 2 {
		t.Fatalf("stored challenger count = %d, want 2", stored)
	}
}

func TestFightTieFavorsInitiator(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	// どちらも攻撃力35.6
	mine := seedRobot(t, db, &owner, "Mine", 20.2, 10.2, 5.2)
	theirs := seedRobot(t, db, &rival, "Theirs", 2.2, 1.2, 32.2)

	battle, err := Fight(db, logger, limits, mine.ID, theirs.ID, owner.ID, "Osaka")
	if err != nil {
		t.Fatalf("Fight returned error: %v", err)
	}

	for _, challenger := range battle.Challengers {
		if challenger.IsVictorious && challenger.RobotID != mine.ID {
			t.Fatalf("tie winner robot = %d, want initiator %d", challenger.RobotID, mine.ID)
		}
	}
}

func TestFightRejectsSameRobot(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	robot := seedRobot(t, db, &owner, "Solo", 1, 1, 1)

	_, err := Fight(db, logger, limits, robot.ID, robot.ID, owner.ID, "Nagoya")
	if !errors.Is(err, ErrSameRobot) {
		t.Fatalf("expected ErrSameRobot, got %v", err)
	}
	assertNoBattles(t, db)
}

func TestFightRejectsUnownedRobot(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)
	theirs := seedRobot(t, db, &rival, "Theirs", 1, 1, 1)

	// 他人のロボットで挑戦しようとする
	_, err := Fight(db, logger, limits, theirs.ID, mine.ID, owner.ID, "Fukuoka")
	if !errors.Is(err, ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	assertNoBattles(t, db)
}

func TestFightRejectsMissingOpponent(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)

	_, err := Fight(db, logger, limits, mine.ID, mine.ID+100, owner.ID, "Sendai")
	if !errors.Is(err, ErrRobotNotFound) {
		t.Fatalf("expected ErrRobotNotFound, got %v", err)
	}
	assertNoBattles(t, db)
}

func TestFightRejectsInitiatorOverDailyLimit(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 2, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)
	theirs := seedRobot(t, db, &rival, "Theirs", 1, 1, 1)

	now := time.Now()
	seedChallenger(t, db, mine.ID, true, now)
	seedChallenger(t, db, mine.ID, true, now)

	_, err := Fight(db, logger, limits, mine.ID, theirs.ID, owner.ID, "Sapporo")
	if !errors.Is(err, ErrInitiatorLimit) {
		t.Fatalf("expected ErrInitiatorLimit, got %v", err)
	}
}

func TestFightRejectsOpponentOverDailyLimit(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 1}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)
	theirs := seedRobot(t, db, &rival, "Theirs", 1, 1, 1)

	seedChallenger(t, db, theirs.ID, false, time.Now())

	_, err := Fight(db, logger, limits, mine.ID, theirs.ID, owner.ID, "Kyoto")
	if !errors.Is(err, ErrOpponentLimit) {
		t.Fatalf("expected ErrOpponentLimit, got %v", err)
	}
}

func TestFightDailyLimitResetsNextDay(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 1, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	rival := seedUser(t, db, "Hanako", "hanako@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)
	theirs := seedRobot(t, db, &rival, "Theirs", 1, 1, 1)

	// 前日の対戦は今日の上限には影響しない
	seedChallenger(t, db, mine.ID, true, time.Now().Add(-24*time.Hour))

	if _, err := Fight(db, logger, limits, mine.ID, theirs.ID, owner.ID, "Kobe"); err != nil {
		t.Fatalf("Fight returned error: %v", err)
	}
}

func TestFightRollsBackOnChallengerFailure(t *testing.T) {
	db := newTestDB(t)
	logger := testLogger(t)
	limits := Limits{MaxRobotChallenges: 5, MaxOpponentRobotChallenges: 5}

	owner := seedUser(t, db, "Taro", "taro@example.com")
	mine := seedRobot(t, db, &owner, "Mine", 1, 1, 1)

	// 所有者のいない相手ロボット。Battle作成後のChallenger作成で失敗し、
	// トランザクション全体がロールバックされる。
	orphan := models.Robot{Name: "Orphan", Power: 1, Speed: 1, Weight: 1}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatalf("failed to create robot: %v", err)
	}

	_, err := Fight(db, logger, limits, mine.ID, orphan.ID, owner.ID, "Hiroshima")
	if err == nil {
		t.Fatalf("expected Fight to fail for ownerless opponent")
	}
	assertNoBattles(t, db)
}

func assertNoBattles(t *testing.T, db *gorm.DB) {
	t.Helper()

	var battles, challengers int64
	if err := db.Model(&models.Battle{}).Count(&battles).Error; err != nil {
		t.Fatalf("failed to count battles: %v", err)
	}
	if err := db.Model(&models.Challenger{}).Count(&challengers).Error; err != nil {
		t.Fatalf("failed to count challengers: %v", err)
	}
	if battles != 0 || challengers != 0 {
		t.Fatalf("expected no battle rows, got %d battles and %d challengers", battles, challengers)
	}
}
