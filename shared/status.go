package shared

// ChefStatus is the life-cycle status of the chef.
type ChefStatus int

const (
	ChefAwaitingOrder ChefStatus = iota
	ChefCooking
	// ChefWaitAfterCook denotes that the cooked food has been handed off to
	// the waiter and the chef is idle until the next order.
	ChefWaitAfterCook
)

func (s ChefStatus) String() string {
	switch s {
	case ChefAwaitingOrder:
		return "AWAITING_ORDER"
	case ChefCooking:
		return "COOKING"
	case ChefWaitAfterCook:
		return "WAIT_AFTER_COOK"
	}
	return "UNKNOWN"
}

// GroupStatus is the life-cycle status of one customer group. Each group
// advances through the values strictly in order, exactly once per run.
type GroupStatus int

const (
	GroupArriving GroupStatus = iota
	GroupAtReception
	GroupFoodRequested
	GroupAwaitingFood
	GroupEating
	GroupCheckingOut
	GroupLeaving
)

func (s GroupStatus) String() string {
	switch s {
	case GroupArriving:
		return "ARRIVING"
	case GroupAtReception:
		return "AT_RECEPTION"
	case GroupFoodRequested:
		return "FOOD_REQUESTED"
	case GroupAwaitingFood:
		return "AWAITING_FOOD"
	case GroupEating:
		return "EATING"
	case GroupCheckingOut:
		return "CHECKING_OUT"
	case GroupLeaving:
		return "LEAVING"
	}
	return "UNKNOWN"
}

// WaiterStatus is the life-cycle status of the waiter.
type WaiterStatus int

const (
	WaiterAwaitingRequest WaiterStatus = iota
	WaiterInformChef
	WaiterTakeToTable
)

func (s WaiterStatus) String() string {
	switch s {
	case WaiterAwaitingRequest:
		return "AWAITING_REQUEST"
	case WaiterInformChef:
		return "INFORM_CHEF"
	case WaiterTakeToTable:
		return "TAKE_TO_TABLE"
	}
	return "UNKNOWN"
}

// ReceptionistStatus is the life-cycle status of the receptionist.
type ReceptionistStatus int

const (
	ReceptionistAwaitingRequest ReceptionistStatus = iota
	ReceptionistAssignTable
	ReceptionistReceivePayment
)

func (s ReceptionistStatus) String() string {
	switch s {
	case ReceptionistAwaitingRequest:
		return "AWAITING_REQUEST"
	case ReceptionistAssignTable:
		return "ASSIGN_TABLE"
	case ReceptionistReceivePayment:
		return "RECEIVE_PAYMENT"
	}
	return "UNKNOWN"
}
