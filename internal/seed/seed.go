// Package seed готовит базу: администратор и, по желанию, примеры элементов.
package seed

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/service"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

//go:embed samples.json
var samplesJSON []byte

// Options — параметры сидирования.
type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	// Samples создаёт примеры, только если элементов ещё нет.
	Samples bool
}

// Result — что было сделано.
type Result struct {
	Admin          *model.User
	SamplesCreated int
}

type sample struct {
	Type        model.ItemType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Tags        []string       `json:"tags"`
	Category    string         `json:"category"`
	Stack       string         `json:"stack"`
	Favorite    bool           `json:"favorite"`
}

// Samples возвращает встроенные примеры элементов.
func Samples() ([]service.ItemInput, error) {
	var raw []sample
	if err := json.Unmarshal(samplesJSON, &raw); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}
	out := make([]service.ItemInput, 0, len(raw))
	for _, s := range raw {
		fav := s.Favorite
		out = append(out, service.ItemInput{
			Type:        s.Type,
			Title:       s.Title,
			Description: s.Description,
			Content:     s.Content,
			Tags:        s.Tags,
			Category:    s.Category,
			Stack:       s.Stack,
			Favorite:    &fav,
		})
	}
	return out, nil
}

// Run идемпотентен: существующий администратор не меняется,
// примеры не дублируются при повторном запуске.
func Run(ctx context.Context, users *service.UserService, items *service.ItemService, opts Options, logger *zap.SugaredLogger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	admin, err := users.EnsureUser(ctx, opts.AdminEmail, opts.AdminPassword, opts.AdminName)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}
	logger.Infow("admin user ready", "email", admin.Email)

	res := &Result{Admin: admin}
	if !opts.Samples {
		return res, nil
	}

	existing, err := items.List(ctx, model.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	if len(existing) > 0 {
		logger.Infow("samples skipped: store is not empty", "items", len(existing))
		return res, nil
	}

	samples, err := Samples()
	if err != nil {
		return nil, err
	}
	for _, in := range samples {
		if _, err := items.Create(ctx, in); err != nil {
			return res, fmt.Errorf("create sample %q: %w", in.Title, err)
		}
		res.SamplesCreated++
	}
	logger.Infow("sample items created", "count", res.SamplesCreated)
	return res, nil
}
