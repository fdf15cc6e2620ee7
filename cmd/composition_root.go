package cmd

import (
	"strconv"
	"time"

	httpin "deliverus/internal/adapters/in/http"
	"deliverus/internal/adapters/out/postgres"
	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	revertWindow time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		revertWindow: revertWindowFromConfig(config),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRevertOrderStatusCommandHandler() commands.RevertOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRevertOrderStatusCommandHandler(f, c.revertWindow)
}

func (c *CompositionRoot) CreateListRestaurantOrdersQueryHandler() queries.ListRestaurantOrdersQueryHandler {
	return queries.NewListRestaurantOrdersQueryHandler(c.gormDB)
}

// CreateOrderValidator builds the payload validation middleware on
// repositories bound to the main connection; validation reads need no
// transaction of their own.
func (c *CompositionRoot) CreateOrderValidator() *httpin.OrderValidator {
	uow := c.uowFactory.Create()
	return httpin.NewOrderValidator(uow.OrderRepository(), uow.RestaurantRepository())
}

// revertWindowFromConfig parses the configured revert window. A missing or
// unusable value yields zero, which the revert handler replaces with the
// domain default.
func revertWindowFromConfig(config Config) time.Duration {
	minutes, err := strconv.Atoi(config.RevertWindowMinutes)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
