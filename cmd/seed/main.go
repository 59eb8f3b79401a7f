package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/prevenio/prevenio-backend/internal/db"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/types"
	"github.com/prevenio/prevenio-backend/internal/utils"
)

type activityFixture struct {
	Name  string   `yaml:"name"`
	Todos []string `yaml:"todos"`
}

type fixtures struct {
	Password       string            `yaml:"password"`
	Preventionists int               `yaml:"preventionists"`
	SupervisorsMin int               `yaml:"supervisors_min"`
	SupervisorsMax int               `yaml:"supervisors_max"`
	ActivitiesMin  int               `yaml:"activities_min"`
	ActivitiesMax  int               `yaml:"activities_max"`
	TodosMin       int               `yaml:"todos_min"`
	TodosMax       int               `yaml:"todos_max"`
	Activities     []activityFixture `yaml:"activities"`
}

func loadFixtures(path string) (*fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(f.Activities) == 0 {
		return nil, fmt.Errorf("fixtures define no activities")
	}
	return &f, nil
}

func randBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	fixturePath := utils.GetEnv("SEED_FIXTURES", "cmd/seed/fixtures.yaml", log)
	f, err := loadFixtures(fixturePath)
	if err != nil {
		log.Error("Could not load fixtures", "error", err)
		os.Exit(1)
	}

	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Database automigrate failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	userRepo := repos.NewUserRepo(theDB, log)
	assignmentRepo := repos.NewAssignmentRepo(theDB, log)
	activityRepo := repos.NewActivityRepo(theDB, log)
	todoRepo := repos.NewTodoItemRepo(theDB, log)

	ctx := context.Background()
	log.Info("Starting database population...")

	totalSupervisors := 0
	totalActivities := 0
	supervisorSeq := 0

	for i := 0; i < f.Preventionists; i++ {
		prev := &types.User{
			ID:       uuid.New(),
			Username: fmt.Sprintf("prev_%d", i),
			Email:    fmt.Sprintf("prev_%d@example.com", i),
			Role:     types.RolePreventionist,
			Password: f.Password,
		}
		if err := utils.HashPassword(prev); err != nil {
			log.Error("Could not hash password", "error", err)
			os.Exit(1)
		}
		created, err := userRepo.Create(ctx, nil, []*types.User{prev})
		if err != nil {
			log.Error("Could not create preventionist", "error", err)
			os.Exit(1)
		}
		prev = created[0]

		numSupervisors := randBetween(f.SupervisorsMin, f.SupervisorsMax)
		for j := 0; j < numSupervisors; j++ {
			sup := &types.User{
				ID:       uuid.New(),
				Username: fmt.Sprintf("sup_%d", supervisorSeq),
				Email:    fmt.Sprintf("sup_%d@example.com", supervisorSeq),
				Role:     types.RoleSupervisor,
				Password: f.Password,
			}
			supervisorSeq++
			if err := utils.HashPassword(sup); err != nil {
				log.Error("Could not hash password", "error", err)
				os.Exit(1)
			}
			createdSup, err := userRepo.Create(ctx, nil, []*types.User{sup})
			if err != nil {
				log.Error("Could not create supervisor", "error", err)
				os.Exit(1)
			}
			sup = createdSup[0]

			assignment := &types.SupervisorAssignment{ID: uuid.New(), SupervisorID: sup.ID, PreventionistID: prev.ID}
			if _, err := assignmentRepo.Upsert(ctx, nil, assignment); err != nil {
				log.Error("Could not assign supervisor", "error", err)
				os.Exit(1)
			}

			numActivities := randBetween(f.ActivitiesMin, f.ActivitiesMax)
			for k := 0; k < numActivities; k++ {
				fixture := f.Activities[rand.Intn(len(f.Activities))]
				prevID := prev.ID
				activity := &types.Activity{
					ID:           uuid.New(),
					Name:         fixture.Name,
					Status:       types.ActivityPending,
					AssignedToID: sup.ID,
					CreatedByID:  &prevID,
				}
				createdAct, err := activityRepo.Create(ctx, nil, []*types.Activity{activity})
				if err != nil {
					log.Error("Could not create activity", "error", err)
					os.Exit(1)
				}
				activity = createdAct[0]

				numTodos := randBetween(f.TodosMin, f.TodosMax)
				if numTodos > len(fixture.Todos) {
					numTodos = len(fixture.Todos)
				}
				order := rand.Perm(len(fixture.Todos))
				todos := make([]*types.TodoItem, 0, numTodos)
				for _, idx := range order[:numTodos] {
					todos = append(todos, &types.TodoItem{
						ID:          uuid.New(),
						Description: fixture.Todos[idx],
						Status:      types.TodoPending,
						ActivityID:  activity.ID,
					})
				}
				if _, err := todoRepo.Create(ctx, nil, todos); err != nil {
					log.Error("Could not create todos", "error", err)
					os.Exit(1)
				}
				totalActivities++
			}
			totalSupervisors++
		}
	}

	log.Info("Finished database population", "supervisors", totalSupervisors, "activities", totalActivities)
}
