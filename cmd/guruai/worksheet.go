package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/guruai/guruai/pkg/models"
)

var (
	worksheetGrades   []int
	worksheetLanguage string
	worksheetSubject  string
	worksheetRegion   string
	worksheetSession  string
)

var worksheetCmd = &cobra.Command{
	Use:   "worksheet <image>",
	Short: "Turn a textbook page photo into differentiated worksheets",
	Long: `Process a photographed textbook page into one worksheet per target
grade. The page is extracted, its complexity analyzed, and a worksheet
generated per grade concurrently; if generation fails for some grades
the remaining worksheets are still returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorksheet(cmd.Context(), args[0])
	},
}

func init() {
	worksheetCmd.Flags().IntSliceVarP(&worksheetGrades, "grades", "g", []int{3, 5}, "Target grade levels (1-8)")
	worksheetCmd.Flags().StringVarP(&worksheetLanguage, "language", "l", "", "Output language (e.g. marathi)")
	worksheetCmd.Flags().StringVarP(&worksheetSubject, "subject", "s", "auto", "Subject hint (auto to detect)")
	worksheetCmd.Flags().StringVarP(&worksheetRegion, "region", "r", "", "Region key for localized content")
	worksheetCmd.Flags().StringVar(&worksheetSession, "session", "", "Existing session ID (new session when empty)")
}

func runWorksheet(ctx context.Context, imagePath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(imagePath))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	sessionID, err := resolveSession(ctx, a, worksheetSession)
	if err != nil {
		return err
	}

	grades := make([]models.GradeLevel, len(worksheetGrades))
	for i, g := range worksheetGrades {
		grades[i] = models.GradeLevel(g)
	}
	region := worksheetRegion
	if region == "" {
		region = a.cfg.Culture.DefaultRegion
	}

	resp, err := a.coord.Route(ctx, &models.RequestEnvelope{
		SessionID:  sessionID,
		Attachment: &models.Attachment{ContentType: contentType, Data: data},
		Modalities: []models.Modality{models.ModalityImage},
		Context: models.SessionContext{
			Language:    worksheetLanguage,
			GradeLevels: grades,
			Subject:     worksheetSubject,
			Region:      region,
		},
	})
	if err != nil {
		return err
	}

	printWorksheets(resp)
	fmt.Printf("\nSession: %s\n", sessionID)
	return nil
}

// printWorksheets renders the response envelope for the terminal.
func printWorksheets(resp *models.AgentResponse) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	fmt.Println(resp.Text)
	if resp.Worksheets == nil {
		return
	}

	for _, artifact := range resp.Worksheets.Artifacts {
		fmt.Println()
		if artifact.Status == models.ArtifactFailed {
			red.Printf("✗ %s: %s\n", artifact.GradeLevel, artifact.FailureReason)
			continue
		}

		green.Printf("✓ %s", artifact.GradeLevel)
		if artifact.Language != "" {
			faint.Printf("  (%s)", artifact.Language)
		}
		fmt.Println()

		body := artifact.Body
		bold.Printf("  %s\n", body.Title)
		for _, section := range body.Sections {
			fmt.Printf("  - %s [%s, %d min]\n", section.Title, section.Type, section.TimeEstimateMinutes)
			if section.Instructions != "" {
				faint.Printf("    %s\n", section.Instructions)
			}
			for _, q := range section.Questions {
				fmt.Printf("      %s\n", q)
			}
		}
		if len(body.Materials) > 0 {
			faint.Printf("  Materials: %s\n", strings.Join(body.Materials, ", "))
		}
		if body.EstimatedMinutes > 0 {
			faint.Printf("  Estimated time: %d min\n", body.EstimatedMinutes)
		}
	}

	if guide := resp.Worksheets.Guide; guide != nil && len(guide.DuringClass) > 0 {
		fmt.Println()
		bold.Println("Classroom plan:")
		for _, step := range guide.DuringClass {
			fmt.Printf("  - %s\n", step)
		}
	}
}

// resolveSession returns the given session ID or creates a new session.
func resolveSession(ctx context.Context, a *app, sessionID string) (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}
	sess, err := a.store.Create(ctx, "local")
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return sess.ID, nil
}
