package model

import (
	"campaign/internal/auth"
	"campaign/internal/config"
	"campaign/internal/entity"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// SeedAdminUser 在不存在同名管理员时创建 ADMIN_USERNAME 账号
func SeedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}
	username := strings.TrimSpace(cfg.AdminUsername)
	password := strings.TrimSpace(cfg.AdminPassword)
	if username == "" || password == "" {
		logrus.Debug("admin seed skipped: ADMIN_USERNAME or ADMIN_PASSWORD not set")
		return nil
	}

	exists, err := repo.AdminUsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("look up admin %s: %w", username, err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := &entity.AdminUser{
		Username:     username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(cfg.AdminEmail),
		IsActive:     true,
	}
	if err := repo.CreateAdminUser(ctx, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	logrus.WithField("username", username).Info("seeded admin user")
	return nil
}

func samplePolicies() []entity.Policy {
	topics := []entity.TopicFields{
		{TitleDE: "Bildung", TitleEN: "Education", DescriptionDE: "Wir investieren in Bildung für alle. Bessere Schulen, bessere Zukunft.", DescriptionEN: "We invest in education for everyone. Better schools, better future.", Color: entity.ColorPurple},
		{TitleDE: "Wirtschaft", TitleEN: "Economy", DescriptionDE: "Starke Wirtschaft durch nachhaltige Entwicklung.", DescriptionEN: "Strong economy through sustainable development.", Color: entity.ColorTeal},
		{TitleDE: "Umwelt", TitleEN: "Environment", DescriptionDE: "Schutz unserer Umwelt für zukünftige Generationen.", DescriptionEN: "Protecting our environment for future generations.", Color: entity.ColorSilver},
	}
	policies := make([]entity.Policy, 0, len(topics))
	for _, t := range topics {
		policies = append(policies, entity.Policy{TopicFields: t, IsActive: true})
	}
	return policies
}

func sampleFAQs() []entity.FAQ {
	return []entity.FAQ{
		{QuestionDE: "Wer sind die Kandidaten?", QuestionEN: "Who are the candidates?", AnswerDE: "Unsere Kandidaten sind engagierte Menschen, die sich für Veränderung einsetzen.", AnswerEN: "Our candidates are committed people dedicated to change.", IsActive: true},
		{QuestionDE: "Wie kann ich abstimmen?", QuestionEN: "How can I vote?", AnswerDE: "Sie können bei der Wahl 2025 teilnehmen.", AnswerEN: "You can participate in the 2025 election.", IsActive: true},
		{QuestionDE: "Was sind die Hauptrichtlinien?", QuestionEN: "What are the main policies?", AnswerDE: "Unsere Hauptrichtlinien konzentrieren sich auf Bildung, Wirtschaft und Umweltschutz.", AnswerEN: "Our main policies focus on education, economy, and environmental protection.", IsActive: true},
		{QuestionDE: "Wie kann ich mit den Kandidaten in Kontakt treten?", QuestionEN: "How can I contact the candidates?", AnswerDE: "Auf jeder Kandidatenseite finden Sie Kontaktinformationen.", AnswerEN: "You can find contact information on each candidate page.", IsActive: true},
	}
}

// SeedSampleContent 为空的政策表与 FAQ 表写入示例内容
func SeedSampleContent(ctx context.Context, repo Repository) error {
	if repo == nil {
		return nil
	}
	if err := seedTable(ctx, repo.Policies(), samplePolicies()); err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	if err := seedTable(ctx, repo.FAQs(), sampleFAQs()); err != nil {
		return fmt.Errorf("seed faqs: %w", err)
	}
	return nil
}

func seedTable[T any](ctx context.Context, table Table[T], rows []T) error {
	count, err := table.Count(ctx, false)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range rows {
		if err := table.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
