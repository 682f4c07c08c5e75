package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"teamflow-backend/internal/config"
	"teamflow-backend/internal/database"
	"teamflow-backend/internal/database/models"
	"teamflow-backend/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Seed data structures matching the YAML fixture file
type UserData struct {
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type MemberData struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type TaskData struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description,omitempty"`
	Status          string   `yaml:"status,omitempty"`
	Priority        string   `yaml:"priority,omitempty"`
	AllowMemberEdit bool     `yaml:"allow_member_edit,omitempty"`
	Assignees       []string `yaml:"assignees,omitempty"`
}

type ProjectData struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Creator     string     `yaml:"creator"`
	Tasks       []TaskData `yaml:"tasks,omitempty"`
}

type OrganizationData struct {
	Name     string        `yaml:"name"`
	Members  []MemberData  `yaml:"members"`
	Projects []ProjectData `yaml:"projects,omitempty"`
}

type SeedData struct {
	Users         []UserData         `yaml:"users"`
	Organizations []OrganizationData `yaml:"organizations"`
}

func main() {
	path := "scripts/seed_data.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", path, err)
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	if err := seed(db, &data); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed data loaded")
}

func seed(db *gorm.DB, data *SeedData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		users := make(map[string]*models.User)

		for _, u := range data.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &models.User{
				FullName:     u.FullName,
				Email:        strings.ToLower(u.Email),
				PasswordHash: string(hash),
				IsActive:     true,
			}
			if err := tx.Where("email = ?", user.Email).FirstOrCreate(user).Error; err != nil {
				return fmt.Errorf("failed to create user %s: %w", u.Email, err)
			}
			users[user.Email] = user
		}

		for _, o := range data.Organizations {
			if len(o.Members) == 0 {
				return fmt.Errorf("organization %s has no members", o.Name)
			}

			creator, ok := users[strings.ToLower(o.Members[0].Email)]
			if !ok {
				return fmt.Errorf("unknown user %s in organization %s", o.Members[0].Email, o.Name)
			}

			org := &models.Organization{
				Name:      o.Name,
				Slug:      service.Slugify(o.Name),
				CreatorID: creator.ID,
			}
			if err := tx.Where("slug = ?", org.Slug).FirstOrCreate(org).Error; err != nil {
				return fmt.Errorf("failed to create organization %s: %w", o.Name, err)
			}

			for _, m := range o.Members {
				user, ok := users[strings.ToLower(m.Email)]
				if !ok {
					return fmt.Errorf("unknown user %s in organization %s", m.Email, o.Name)
				}
				membership := &models.Membership{
					UserID:         user.ID,
					OrganizationID: org.ID,
					Role:           models.Role(m.Role),
				}
				if !membership.Role.IsValid() {
					return fmt.Errorf("invalid role %q for %s", m.Role, m.Email)
				}
				if err := tx.Where("user_id = ? AND organization_id = ?", user.ID, org.ID).
					FirstOrCreate(membership).Error; err != nil {
					return fmt.Errorf("failed to create membership for %s: %w", m.Email, err)
				}
			}

			for _, p := range o.Projects {
				creator, ok := users[strings.ToLower(p.Creator)]
				if !ok {
					return fmt.Errorf("unknown creator %s for project %s", p.Creator, p.Name)
				}
				project := &models.Project{
					OrganizationID: org.ID,
					CreatorID:      creator.ID,
					Name:           p.Name,
					Description:    p.Description,
				}
				if err := tx.Where("organization_id = ? AND name = ?", org.ID, p.Name).
					FirstOrCreate(project).Error; err != nil {
					return fmt.Errorf("failed to create project %s: %w", p.Name, err)
				}

				for _, t := range p.Tasks {
					task := &models.Task{
						OrganizationID:  org.ID,
						ProjectID:       project.ID,
						Title:           t.Title,
						Description:     t.Description,
						Status:          models.TaskStatusOpen,
						Priority:        models.TaskPriorityMedium,
						AllowMemberEdit: t.AllowMemberEdit,
					}
					if t.Status != "" {
						task.Status = models.TaskStatus(t.Status)
					}
					if t.Priority != "" {
						task.Priority = models.TaskPriority(t.Priority)
					}
					if err := tx.Where("project_id = ? AND title = ?", project.ID, t.Title).
						FirstOrCreate(task).Error; err != nil {
						return fmt.Errorf("failed to create task %s: %w", t.Title, err)
					}

					for _, email := range t.Assignees {
						user, ok := users[strings.ToLower(email)]
						if !ok {
							return fmt.Errorf("unknown assignee %s on task %s", email, t.Title)
						}
						if err := tx.Model(task).Association("Assignees").Append(user); err != nil {
							return fmt.Errorf("failed to assign %s to %s: %w", email, t.Title, err)
						}
					}
				}
			}
		}

		log.Printf("Seeded %d users and %d organizations at %s",
			len(data.Users), len(data.Organizations), time.Now().Format(time.RFC3339))
		return nil
	})
}
