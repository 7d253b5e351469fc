package helper

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func fetch(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp.StatusCode, body
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Success(c, "OK", fiber.Map{"answer": 42})
	})
	app.Get("/created", func(c *fiber.Ctx) error {
		return SuccessWithCode(c, fiber.StatusCreated, "Created", nil)
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusBadRequest, "nope")
	})
	app.Get("/translated", func(c *fiber.Ctx) error {
		return FromFiberError(c, fiber.NewError(fiber.StatusConflict, "already there"))
	})
	app.Get("/opaque", func(c *fiber.Ctx) error {
		return FromFiberError(c, errors.New("boom"))
	})

	t.Run("success carries code/status/message/data", func(t *testing.T) {
		status, body := fetch(t, app, "/ok")
		if status != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["status"] != "success" || body["message"] != "OK" {
			t.Errorf("envelope = %v", body)
		}
		data, ok := body["data"].(map[string]interface{})
		if !ok || data["answer"] != float64(42) {
			t.Errorf("data = %v, want answer=42", body["data"])
		}
	})

	t.Run("custom success code is reflected in body and status", func(t *testing.T) {
		status, body := fetch(t, app, "/created")
		if status != fiber.StatusCreated || body["code"] != float64(fiber.StatusCreated) {
			t.Errorf("status/code = %d/%v, want 201/201", status, body["code"])
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		status, body := fetch(t, app, "/bad")
		if status != fiber.StatusBadRequest || body["status"] != "error" || body["message"] != "nope" {
			t.Errorf("status=%d body=%v", status, body)
		}
	})

	t.Run("fiber errors keep their code through FromFiberError", func(t *testing.T) {
		status, body := fetch(t, app, "/translated")
		if status != fiber.StatusConflict || body["message"] != "already there" {
			t.Errorf("status=%d body=%v", status, body)
		}
	})

	t.Run("opaque errors fall back to 500", func(t *testing.T) {
		status, body := fetch(t, app, "/opaque")
		if status != fiber.StatusInternalServerError || body["message"] != "boom" {
			t.Errorf("status=%d body=%v", status, body)
		}
	})
}

func TestValidationErrorMapping(t *testing.T) {
	type payload struct {
		StudentName   string `validate:"required"`
		PaymentMethod string `validate:"oneof=cash instapay fawry"`
	}
	verr := validator.New().Struct(payload{PaymentMethod: "bitcoin"})
	if verr == nil {
		t.Fatal("fixture did not fail validation")
	}

	app := fiber.New()
	app.Get("/v", func(c *fiber.Ctx) error {
		return ValidationError(c, verr)
	})
	app.Get("/not-validator", func(c *fiber.Ctx) error {
		return ValidationError(c, errors.New("plain error"))
	})

	t.Run("field to tag map", func(t *testing.T) {
		status, body := fetch(t, app, "/v")
		if status != fiber.StatusBadRequest || body["message"] != "Validation failed" {
			t.Fatalf("status=%d body=%v", status, body)
		}
		fields, ok := body["errors"].(map[string]interface{})
		if !ok {
			t.Fatalf("errors = %v, want map", body["errors"])
		}
		if fields["StudentName"] != "required" {
			t.Errorf("StudentName tag = %v, want required", fields["StudentName"])
		}
		if fields["PaymentMethod"] != "oneof" {
			t.Errorf("PaymentMethod tag = %v, want oneof", fields["PaymentMethod"])
		}
	})

	t.Run("non-validator error degrades to a plain 400", func(t *testing.T) {
		status, body := fetch(t, app, "/not-validator")
		if status != fiber.StatusBadRequest || body["message"] != "Invalid input" {
			t.Errorf("status=%d body=%v", status, body)
		}
	})
}
