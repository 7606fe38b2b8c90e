package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"topic-quiz-bot/internal/config"
	"topic-quiz-bot/internal/domain"
)

// seedFile is the YAML layout for `quiz-bot seed --file`.
type seedFile struct {
	Topics []seedTopic `yaml:"topics"`
}

type seedTopic struct {
	Name      string         `yaml:"name"`
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Prompt      string `yaml:"prompt"`
	A           string `yaml:"a"`
	B           string `yaml:"b"`
	C           string `yaml:"c"`
	D           string `yaml:"d"`
	Correct     string `yaml:"correct"`
	Explanation string `yaml:"explanation"`
}

// NewSeedCmd loads a YAML catalog file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load topics and questions from a YAML file into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "catalog.yaml", "path to the catalog YAML file")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, file string) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	var catalog seedFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}
	if err := validateSeed(catalog); err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	inserted := 0
	for _, topic := range catalog.Topics {
		var topicID int64
		if err := db.QueryRowContext(ctx,
			`INSERT INTO topics (name) VALUES (?) RETURNING id`, topic.Name,
		).Scan(&topicID); err != nil {
			return fmt.Errorf("insert topic %q: %w", topic.Name, err)
		}
		for _, q := range topic.Questions {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO questions (topic_id, question, option_a, option_b, option_c, option_d, correct_answer, explanation)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				topicID, q.Prompt, q.A, q.B, q.C, q.D, q.Correct, q.Explanation,
			); err != nil {
				return fmt.Errorf("insert question %q: %w", q.Prompt, err)
			}
			inserted++
		}
	}
	log.Printf("seeded %d topics, %d questions", len(catalog.Topics), inserted)
	return nil
}

func validateSeed(catalog seedFile) error {
	labels := make(map[string]struct{}, len(domain.ChoiceLabels))
	for _, l := range domain.ChoiceLabels {
		labels[l] = struct{}{}
	}
	for _, topic := range catalog.Topics {
		if topic.Name == "" {
			return fmt.Errorf("topic with empty name")
		}
		for _, q := range topic.Questions {
			if q.Prompt == "" {
				return fmt.Errorf("topic %q: question with empty prompt", topic.Name)
			}
			if _, ok := labels[q.Correct]; !ok {
				return fmt.Errorf("topic %q, question %q: correct label %q must be one of a, b, c, d", topic.Name, q.Prompt, q.Correct)
			}
		}
	}
	return nil
}
