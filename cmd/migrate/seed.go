package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pomodoroclock/backend/internal/config"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/service"
)

// seedFile is the YAML fixture format accepted by `migrate seed --file`.
type seedFile struct {
	Users   []seedUser   `yaml:"users"`
	Friends []seedFriend `yaml:"friends"`
}

type seedUser struct {
	Username  string     `yaml:"username"`
	Password  string     `yaml:"password"`
	FirstName string     `yaml:"firstName"`
	LastName  string     `yaml:"lastName"`
	Email     string     `yaml:"email"`
	Admin     bool       `yaml:"admin"`
	Lists     []seedList `yaml:"lists"`
}

type seedList struct {
	Title string     `yaml:"title"`
	Focus *bool      `yaml:"focus"`
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	Title    string `yaml:"title"`
	Expected int    `yaml:"expected"`
}

type seedFriend struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Accepted bool   `yaml:"accepted"`
}

type seeder struct {
	users   *service.UserService
	lists   *service.ListService
	tasks   *service.TaskService
	friends *service.FriendService
}

func seedCmd(cfg *config.Config) *cobra.Command {
	var (
		count    int
		password string
		prefix   string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo users with lists and tasks",
		Long: `Create demo data.

Without --file, creates --users users named <prefix>1..N, each with one focus
list of sample tasks. With --file, loads users, lists, tasks and friend edges
from a YAML fixture.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := generatedSeed(count, prefix, password)
			if file != "" {
				loaded, err := loadSeedFile(file)
				if err != nil {
					return err
				}
				data = loaded
			}

			database, err := openDatabase(*cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			listRepo := repository.NewListRepository(database)
			taskRepo := repository.NewTaskRepository(database)
			s := seeder{
				users:   service.NewUserService(repository.NewUserRepository(database), cfg.BcryptCost),
				lists:   service.NewListService(listRepo, taskRepo),
				tasks:   service.NewTaskService(taskRepo, listRepo),
				friends: service.NewFriendService(repository.NewFriendRepository(database)),
			}
			if err := s.apply(cmd.Context(), data); err != nil {
				return err
			}

			log.Printf("seeded %d users", len(data.Users))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "users", "n", 5, "number of generated demo users")
	cmd.Flags().StringVar(&password, "password", "password", "password for every generated user")
	cmd.Flags().StringVar(&prefix, "prefix", "demo", "generated username prefix")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load instead of generated users")
	return cmd
}

func loadSeedFile(path string) (seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return seedFile{}, fmt.Errorf("read seed file: %w", err)
	}

	var data seedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return seedFile{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return data, nil
}

func generatedSeed(count int, prefix, password string) seedFile {
	focus := model.ListTypeFocus
	data := seedFile{}
	for i := 1; i <= count; i++ {
		username := fmt.Sprintf("%s%d", prefix, i)
		data.Users = append(data.Users, seedUser{
			Username:  username,
			Password:  password,
			FirstName: "Demo",
			LastName:  username,
			Email:     username + "@example.com",
			Lists: []seedList{{
				Title: "Deep work",
				Focus: &focus,
				Tasks: []seedTask{
					{Title: "Plan the day", Expected: 1},
					{Title: "Write", Expected: 2},
					{Title: "Review", Expected: 3},
				},
			}},
		})
	}
	return data
}

func (s seeder) apply(ctx context.Context, data seedFile) error {
	for _, u := range data.Users {
		_, apiErr := s.users.Register(ctx, model.NewUser{
			Username:  u.Username,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			IsAdmin:   u.Admin,
		})
		if apiErr != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, apiErr)
		}

		for _, l := range u.Lists {
			title := l.Title
			list, apiErr := s.lists.Add(ctx, model.NewList{Username: u.Username, Title: &title, ListType: l.Focus})
			if apiErr != nil {
				return fmt.Errorf("seed list %q for %s: %w", l.Title, u.Username, apiErr)
			}

			for _, t := range l.Tasks {
				name := t.Title
				input := model.NewTask{Title: &name}
				if t.Expected > 0 {
					expected := t.Expected
					input.ExpectedPomodoros = &expected
				}
				if _, apiErr := s.tasks.Add(ctx, list.ID, input); apiErr != nil {
					return fmt.Errorf("seed task %q for %s: %w", t.Title, u.Username, apiErr)
				}
			}
		}
	}

	for _, f := range data.Friends {
		if _, apiErr := s.friends.Request(ctx, f.From, f.To, f.Accepted); apiErr != nil {
			return fmt.Errorf("seed friend %s to %s: %w", f.From, f.To, apiErr)
		}
	}
	return nil
}
