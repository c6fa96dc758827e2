package models

type ServiceType string

const (
	ServiceTypeMotoTaxi     ServiceType = "moto_taxi"
	ServiceTypeCar          ServiceType = "car"
	ServiceTypeDeliveryBike ServiceType = "delivery_bike"
	ServiceTypeDeliveryCar  ServiceType = "delivery_car"
)

var AllServiceTypes = []ServiceType{
	ServiceTypeMotoTaxi,
	ServiceTypeCar,
	ServiceTypeDeliveryBike,
	ServiceTypeDeliveryCar,
}

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeMotoTaxi, ServiceTypeCar, ServiceTypeDeliveryBike, ServiceTypeDeliveryCar:
		return true
	}
	return false
}

func (s ServiceType) IsDelivery() bool {
	return s == ServiceTypeDeliveryBike || s == ServiceTypeDeliveryCar
}
