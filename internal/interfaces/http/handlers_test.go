package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jfarias/agrolibro-api/internal/application/auth"
	"github.com/jfarias/agrolibro-api/internal/application/importer"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/ledger"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
	apphttp "github.com/jfarias/agrolibro-api/internal/interfaces/http"
	pkgjwt "github.com/jfarias/agrolibro-api/pkg/jwt"
	"github.com/jfarias/agrolibro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "agrolibro-test"
	testUser      = "operador"
	testPassword  = "clave-segura"
	testExpMin    = 60
)

type nopStore struct{}

func (nopStore) Load(context.Context) (*state.State, error) { return nil, nil }
func (nopStore) Save(context.Context, *state.State) error   { return nil }

// buildTestApp levanta la aplicación completa (router + middlewares) sobre un
// estado vacío y un store que no persiste.
func buildTestApp(t *testing.T) (*fiber.App, *keeper.Keeper) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	kp := keeper.New(state.New(), nopStore{}, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Keeper:   kp,
		Importer: importer.New(kp, logger.Nop()),
		AuthUC: auth.New(auth.Config{
			User:         testUser,
			PasswordHash: string(hash),
			JWTSecret:    testJWTSecret,
			JWTIssuer:    testIssuer,
			ExpMinutes:   testExpMin,
		}),
		JWTSecret: testJWTSecret,
	})
	return app, kp
}

// bearerToken genera un token válido sin pasar por el login.
func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUser, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// itemInput entrada mínima para dar de alta un insumo en kilos.
func itemInput(name, warehouseID string) ledger.ItemInput {
	return ledger.ItemInput{Name: name, WarehouseID: warehouseID, Unit: unit.Kilo}
}

// decode deserializa el cuerpo de la respuesta en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidasEmitenToken(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		fiber.Map{"user": testUser, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)

	// El token emitido debe abrir una ruta protegida.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/units", "Bearer "+out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_ClaveIncorrectaDevuelve401(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		fiber.Map{"user": testUser, "password": "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_SinTokenDevuelven401(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/inventory/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario: alta, entradas, salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_FlujoCompletoEntradaYSalida(t *testing.T) {
	app, _ := buildTestApp(t)
	token := bearerToken(t)

	// Bodega
	resp := doJSON(t, app, http.MethodPost, "/api/warehouses", token,
		fiber.Map{"name": "Bodega Principal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var wh struct {
		ID string `json:"id"`
	}
	decode(t, resp, &wh)

	// Insumo en kilos: su categoría base es masa, saldo en gramos.
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/items", token,
		fiber.Map{"name": "Urea", "category": "fertilizante", "warehouse_id": wh.ID, "unit": "KILO"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decode(t, resp, &item)

	// Entrada: 2 bultos de 50 kg a $150.000 el bulto.
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/movements", token,
		fiber.Map{"item_id": item.ID, "type": "IN", "quantity": "2", "unit": "BULTO_50KG", "unit_price": "150000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Salida: 30 kg costeados al promedio vigente ($3/g).
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/movements", token,
		fiber.Map{"item_id": item.ID, "type": "OUT", "quantity": "30", "unit": "KILO"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mov struct {
		CalculatedCost decimal.Decimal `json:"calculated_cost"`
	}
	decode(t, resp, &mov)
	assert.True(t, mov.CalculatedCost.Equal(decimal.NewFromInt(90000)),
		"costo de la salida: %s", mov.CalculatedCost)

	// El saldo queda en unidades base: 100.000 g - 30.000 g.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/items", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Total int `json:"total"`
		Items []struct {
			CurrentQuantity decimal.Decimal `json:"current_quantity"`
			AverageCost     decimal.Decimal `json:"average_cost"`
		} `json:"items"`
	}
	decode(t, resp, &list)
	require.Equal(t, 1, list.Total)
	assert.True(t, list.Items[0].CurrentQuantity.Equal(decimal.NewFromInt(70000)))
	assert.True(t, list.Items[0].AverageCost.Equal(decimal.NewFromInt(3)))
}

func TestInventario_SalidaSinStockDevuelve409(t *testing.T) {
	app, kp := buildTestApp(t)
	token := bearerToken(t)

	wh, err := kp.CreateWarehouse("Bodega Principal", "")
	require.NoError(t, err)
	item, err := kp.RegisterItem(itemInput("Urea", wh.ID))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token,
		fiber.Map{"item_id": item.ID, "type": "OUT", "quantity": "1", "unit": "KILO"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var out struct {
		Code string `json:"code"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestInventario_MovimientoSobreItemInexistenteDevuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token,
		fiber.Map{"item_id": "no-existe", "type": "IN", "quantity": "1", "unit": "KILO", "unit_price": "100"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación en dos fases
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminacion_PlanYEjecucionDeUnLote(t *testing.T) {
	app, kp := buildTestApp(t)
	token := bearerToken(t)

	lot, err := kp.CreateLot("Lote La Esperanza", "café", 2.5)
	require.NoError(t, err)

	// Fase 1: plan de impacto.
	resp := doJSON(t, app, http.MethodPost, "/api/lots/"+lot.ID+"/deletion-plan", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var plan map[string]any
	decode(t, resp, &plan)
	assert.Equal(t, "Lote La Esperanza", plan["name"])

	// Fase 2: ejecución con el plan tal cual se recibió.
	resp = doJSON(t, app, http.MethodDelete, "/api/lots/"+lot.ID, token, plan)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, kp.Snapshot().Lots)
}

func TestEliminacion_PlanObsoletoDevuelve409(t *testing.T) {
	app, kp := buildTestApp(t)
	token := bearerToken(t)

	lot, err := kp.CreateLot("Lote La Esperanza", "café", 2.5)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/lots/"+lot.ID+"/deletion-plan", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var plan map[string]any
	decode(t, resp, &plan)

	// Entre el plan y la ejecución aparece un presupuesto del lote.
	_, err = kp.CreateBudget("Presupuesto 2026", lot.ID, 2026, decimal.NewFromInt(1000000))
	require.NoError(t, err)

	resp = doJSON(t, app, http.MethodDelete, "/api/lots/"+lot.ID, token, plan)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Len(t, kp.Snapshot().Lots, 1, "un plan obsoleto no debe tocar el estado")
}

func TestEliminacion_ClaseDesconocidaDevuelve400(t *testing.T) {
	app, _ := buildTestApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/parcelas/x/deletion-plan", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación por lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestImportBatch_ReportaFilaPorFila(t *testing.T) {
	app, kp := buildTestApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/import/batch", token, []fiber.Map{
		{"kind": "warehouse", "name": "Bodega Principal"},
		{"kind": "worker", "name": ""},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Results []struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"results"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].OK)
	assert.False(t, out.Results[1].OK)
	assert.Len(t, kp.Snapshot().Warehouses, 1)
}
