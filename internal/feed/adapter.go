package feed

import (
	"github.com/jamespfennell/gtfs"
)

// FromStatic converts a parsed GTFS archive into the flat tables the
// timetable builder consumes. Zipped feeds and hand-built test fixtures flow
// through the same builder this way.
func FromStatic(static *gtfs.Static) *Feed {
	f := &Feed{}

	for _, agency := range static.Agencies {
		f.Agencies = append(f.Agencies, Agency{
			ID:       agency.Id,
			Name:     agency.Name,
			URL:      agency.Url,
			Timezone: agency.Timezone,
		})
	}

	for _, stop := range static.Stops {
		f.Stops = append(f.Stops, convertStop(&stop))
	}

	for _, route := range static.Routes {
		record := RouteRecord{
			ID:        route.Id,
			ShortName: route.ShortName,
			LongName:  route.LongName,
		}
		if route.Agency != nil {
			record.AgencyID = route.Agency.Id
		}
		f.Routes = append(f.Routes, record)
	}

	for i := range static.Trips {
		trip := &static.Trips[i]
		record := TripRecord{ID: trip.ID}
		if trip.Route != nil {
			record.RouteID = trip.Route.Id
		}
		if trip.Service != nil {
			record.ServiceID = trip.Service.Id
		}
		if trip.Shape != nil {
			record.ShapeID = trip.Shape.ID
		}
		f.Trips = append(f.Trips, record)

		for _, st := range trip.StopTimes {
			stopID := ""
			if st.Stop != nil {
				stopID = st.Stop.Id
			}
			f.StopTimes = append(f.StopTimes, StopTimeRecord{
				TripID:       trip.ID,
				StopSequence: st.StopSequence,
				StopID:       stopID,
				Arrival:      st.ArrivalTime,
				Departure:    st.DepartureTime,
			})
		}
	}

	for _, service := range static.Services {
		f.Calendars = append(f.Calendars, Calendar{
			ServiceID: service.Id,
			Weekdays: [7]bool{
				service.Sunday,
				service.Monday,
				service.Tuesday,
				service.Wednesday,
				service.Thursday,
				service.Friday,
				service.Saturday,
			},
			StartDate: DateOnly(service.StartDate),
			EndDate:   DateOnly(service.EndDate),
		})
		for _, date := range service.AddedDates {
			f.CalendarDates = append(f.CalendarDates, CalendarDate{
				ServiceID: service.Id,
				Date:      DateOnly(date),
				Exception: Added,
			})
		}
		for _, date := range service.RemovedDates {
			f.CalendarDates = append(f.CalendarDates, CalendarDate{
				ServiceID: service.Id,
				Date:      DateOnly(date),
				Exception: Removed,
			})
		}
	}

	return f
}

func convertStop(stop *gtfs.Stop) StopRecord {
	record := StopRecord{
		ID:           stop.Id,
		Name:         stop.Name,
		PlatformCode: stop.PlatformCode,
	}
	if stop.Latitude != nil {
		record.Lat = *stop.Latitude
	}
	if stop.Longitude != nil {
		record.Lon = *stop.Longitude
	}
	if stop.Parent != nil {
		record.ParentStation = stop.Parent.Id
	}
	switch stop.Type {
	case gtfs.StopType_Station:
		record.LocationType = Station
	case gtfs.StopType_EntranceOrExit:
		record.LocationType = EntranceExit
	case gtfs.StopType_GenericNode:
		record.LocationType = Node
	case gtfs.StopType_BoardingArea:
		record.LocationType = BoardingArea
	default:
		record.LocationType = Platform
	}
	return record
}
