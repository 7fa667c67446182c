package services

import (
	"github.com/divya9658/financial-ledger-api/internal/core/locking"
	"github.com/divya9658/financial-ledger-api/internal/core/ports/events"
	portsrepo "github.com/divya9658/financial-ledger-api/internal/core/ports/repositories"
	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
)

// NewServiceContainer wires the concrete services behind their facades.
func NewServiceContainer(
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	locks *locking.Manager,
	publisher events.Publisher,
) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(accountRepo)
	return &portssvc.ServiceContainer{
		Account: accountSvc,
		Ledger:  NewLedgerService(ledgerRepo, accountSvc, locks, publisher),
	}
}
