package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guruai/guruai/pkg/models"
)

var (
	askIntent   string
	askGrades   []int
	askLanguage string
	askRegion   string
	askSession  string
)

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Ask a specialist agent for content, explanations or plans",
	Long: `Send a text request to GuruAI. With --intent the request goes to the
agent claiming that skill; otherwise the content generator handles it.

Skills: process_worksheet, generate_story, create_game, localized_example,
explain_concept, simple_analogy, create_diagram, visual_aid, plan_lesson,
assess_reading, track_progress.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().StringVarP(&askIntent, "intent", "i", "", "Skill identifier to route by")
	askCmd.Flags().IntSliceVarP(&askGrades, "grades", "g", nil, "Target grade levels (1-8)")
	askCmd.Flags().StringVarP(&askLanguage, "language", "l", "", "Output language")
	askCmd.Flags().StringVarP(&askRegion, "region", "r", "", "Region key for localized content")
	askCmd.Flags().StringVar(&askSession, "session", "", "Existing session ID (new session when empty)")
}

func runAsk(ctx context.Context, text string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	sessionID, err := resolveSession(ctx, a, askSession)
	if err != nil {
		return err
	}

	grades := make([]models.GradeLevel, len(askGrades))
	for i, g := range askGrades {
		grades[i] = models.GradeLevel(g)
	}
	region := askRegion
	if region == "" {
		region = a.cfg.Culture.DefaultRegion
	}

	resp, err := a.coord.Route(ctx, &models.RequestEnvelope{
		SessionID:  sessionID,
		Text:       text,
		Modalities: []models.Modality{models.ModalityText},
		Intent:     askIntent,
		Context: models.SessionContext{
			Language:    askLanguage,
			GradeLevels: grades,
			Region:      region,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("[%s]\n\n%s\n\nSession: %s\n", resp.AgentID, resp.Text, sessionID)
	return nil
}
