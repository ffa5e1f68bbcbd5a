package main

import (
	"sync"

	"ars/src/db"
	"ars/src/inventory"
	"ars/src/lib"
	"ars/src/services"
)

var (
	wireOnce          sync.Once
	billingService    *services.BillingService
	hostelAllocations *services.AllocationService
	hotelAllocations  *services.AllocationService
)

// wireServices builds the service graph once, on first request. The gateway
// and mailer come from the environment; tests swap the database underneath
// through db.NewDB before the first call.
func wireServices() {
	wireOnce.Do(func() {
		gdb := db.GetDb()
		gateway := lib.NewKorapayClient()
		billingService = services.NewBillingService(gdb, gateway)
		hostelAllocations = services.NewAllocationService(gdb, inventory.NewHostelRegistry(), billingService)
		hotelAllocations = services.NewAllocationService(gdb, inventory.NewHotelRegistry(), billingService)
	})
}

func getBillingService() *services.BillingService {
	wireServices()
	return billingService
}

func getHostelAllocations() *services.AllocationService {
	wireServices()
	return hostelAllocations
}

func getHotelAllocations() *services.AllocationService {
	wireServices()
	return hotelAllocations
}
