package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var customerCSVHeader = []string{"first_name", "last_name", "email", "phone"}

type ProductFileFormat string

const (
	ProductFileJSON ProductFileFormat = "json"
	ProductFileYAML ProductFileFormat = "yaml"
)

// ファイル名の拡張子から形式を決める
func ProductFileFormatFromName(name string) (ProductFileFormat, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return ProductFileJSON, true
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return ProductFileYAML, true
	default:
		return "", false
	}
}

// 取り込み用の商品1件。is_activeを省略したら公開扱い
type productRecord struct {
	Name     string          `json:"name" yaml:"name"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Stock    int64           `json:"stock" yaml:"stock"`
	IsActive *bool           `json:"is_active" yaml:"is_active"`
	Rating   *float32        `json:"rating" yaml:"rating"`
}

// 一括取り込み。行ごとに独立して書き込み、途中で失敗したらそこで止める
// （それまでの行は残る）
type ImportUsecase struct {
	customers repo.CustomerRepository
	products  repo.ProductRepository
	clock     Clock
}

func NewImportUsecase(customers repo.CustomerRepository, products repo.ProductRepository, clock Clock) *ImportUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ImportUsecase{customers: customers, products: products, clock: clock}
}

// 顧客CSV（ヘッダ必須: first_name,last_name,email,phone）。emailが同じなら上書き
func (u *ImportUsecase) ImportCustomersCSV(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, NewValidationError("CSV header must be: %s", strings.Join(customerCSVHeader, ","))
	}
	if err != nil {
		return 0, NewValidationError("invalid CSV: %v", err)
	}
	if !matchHeader(header, customerCSVHeader) {
		return 0, NewValidationError("CSV header must be: %s", strings.Join(customerCSVHeader, ","))
	}

	n := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, NewValidationError("invalid CSV: %v", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlankRecord(rec) {
			continue
		}
		if len(rec) < len(customerCSVHeader) {
			return n, NewValidationError("line %d: expected %d columns, got %d", line, len(customerCSVHeader), len(rec))
		}

		in := CustomerInput{FirstName: rec[0], LastName: rec[1], Email: rec[2], Phone: rec[3]}.normalize()
		if err := in.validate(); err != nil {
			return n, NewValidationError("line %d: %s", line, errMessage(err))
		}

		c := in.toModel()
		c.CreatedAt = u.clock.Now()
		if err := u.customers.UpsertByEmail(ctx, c); err != nil {
			return n, NewInfraError(err)
		}
		n++
	}
	return n, nil
}

// 商品ファイル（JSON配列またはYAMLのリスト）。nameが同じなら上書き
func (u *ImportUsecase) ImportProducts(ctx context.Context, r io.Reader, format ProductFileFormat) (int, error) {
	var records []productRecord
	switch format {
	case ProductFileJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return 0, NewValidationError("invalid JSON: %v", err)
		}
	case ProductFileYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return 0, NewValidationError("invalid YAML: %v", err)
		}
	default:
		return 0, NewValidationError("unsupported format %q", format)
	}

	n := 0
	for i, rec := range records {
		in := ProductInput{
			Name:     strings.TrimSpace(rec.Name),
			Price:    rec.Price,
			Stock:    rec.Stock,
			IsActive: rec.IsActive == nil || *rec.IsActive,
			Rating:   rec.Rating,
		}
		if err := in.validate(); err != nil {
			return n, NewValidationError("item %d: %s", i, errMessage(err))
		}

		if err := u.products.UpsertByName(ctx, model.Product{
			Name:      in.Name,
			Price:     in.Price,
			Stock:     in.Stock,
			IsActive:  in.IsActive,
			Rating:    in.Rating,
			CreatedAt: u.clock.Now(),
		}); err != nil {
			return n, NewInfraError(err)
		}
		n++
	}
	return n, nil
}

func matchHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return false
		}
	}
	return true
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func errMessage(err error) string {
	if e, ok := AsError(err); ok {
		return e.Message
	}
	return fmt.Sprint(err)
}
