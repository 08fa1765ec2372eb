// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/internal/app"
)

// humanizeError turns adapter and network errors into messages for the user.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Sessão inválida ou expirada. Entre novamente pelo navegador."
	case errors.Is(err, adapter.ErrForbidden):
		return "Seu e-mail não está autorizado a usar o sistema."
	case errors.Is(err, adapter.ErrConflict):
		return "Não é possível remover o próprio acesso."
	case errors.Is(err, adapter.ErrNotFound):
		return "Registro não encontrado. A lista pode estar desatualizada."
	case errors.Is(err, adapter.ErrGatewayTimeout):
		return "A planilha demorou demais para responder. Tente novamente."
	case errors.Is(err, adapter.ErrBadGateway):
		if strings.Contains(err.Error(), app.MsgOperationNotApplied) {
			return "A planilha recusou a operação e nada foi alterado. Tente novamente em instantes."
		}
		return "A planilha recusou a operação. Tente novamente em instantes."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Sem rede ou servidor indisponível"
	}

	return err.Error()
}
